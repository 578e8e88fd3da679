// internal/core/usecases/classifier_test.go
package usecases

import (
	"testing"

	"linkscout/internal/core/domain"
)

func testBatch() *domain.ValidationBatch {
	batch := domain.NewValidationBatch(5)
	batch.Append(domain.ValidationResult{Link: "1", Status: domain.StatusActive, GroupName: "A"})
	batch.Append(domain.ValidationResult{Link: "2", Status: domain.StatusExpired, GroupName: domain.ExpiredGroup})
	batch.Append(domain.ValidationResult{Link: "3", Status: domain.StatusActive, GroupName: "B"})
	batch.Append(domain.ValidationResult{Link: "4", Status: domain.StatusInvalid})
	batch.Append(domain.ValidationResult{Link: "5", Status: domain.StatusError, ErrorDetail: "timeout"})
	batch.Finalize()
	return batch
}

func TestCountsSumToBatchSize(t *testing.T) {
	classifier := NewClassifier()
	batch := testBatch()

	counts := classifier.Counts(batch)

	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != batch.Len() {
		t.Errorf("counts sum to %d, expected batch size %d", sum, batch.Len())
	}

	if counts[domain.StatusActive] != 2 {
		t.Errorf("active = %d, expected 2", counts[domain.StatusActive])
	}
	if counts[domain.StatusExpired] != 1 || counts[domain.StatusInvalid] != 1 || counts[domain.StatusError] != 1 {
		t.Errorf("unexpected partition: %v", counts)
	}
}

func TestCountsIncludeAbsentStatuses(t *testing.T) {
	classifier := NewClassifier()
	batch := domain.NewValidationBatch(1)
	batch.Append(domain.ValidationResult{Link: "1", Status: domain.StatusActive, GroupName: "A"})
	batch.Finalize()

	counts := classifier.Counts(batch)
	for _, s := range domain.AllStatuses {
		if _, ok := counts[s]; !ok {
			t.Errorf("status %s missing from counts", s)
		}
	}
	if counts[domain.StatusError] != 0 {
		t.Errorf("absent status should count zero, got %d", counts[domain.StatusError])
	}
}

func TestFilterPreservesCompletionOrder(t *testing.T) {
	classifier := NewClassifier()
	batch := testBatch()

	active := classifier.Filter(batch, domain.StatusActive)
	if len(active) != 2 {
		t.Fatalf("filter returned %d results, expected 2", len(active))
	}
	if active[0].Link != "1" || active[1].Link != "3" {
		t.Errorf("filter broke completion order: %v", active)
	}

	dead := classifier.Filter(batch, domain.StatusExpired, domain.StatusInvalid, domain.StatusError)
	if len(dead) != 3 {
		t.Fatalf("multi-status filter returned %d results, expected 3", len(dead))
	}
	if dead[0].Link != "2" || dead[1].Link != "4" || dead[2].Link != "5" {
		t.Errorf("multi-status filter broke order: %v", dead)
	}
}

func TestFilterEmptyStatusSet(t *testing.T) {
	classifier := NewClassifier()
	if got := classifier.Filter(testBatch()); len(got) != 0 {
		t.Errorf("empty status set should filter everything, got %v", got)
	}
}

func TestActiveView(t *testing.T) {
	classifier := NewClassifier()
	active := classifier.Active(testBatch())
	for _, r := range active {
		if r.Status != domain.StatusActive {
			t.Errorf("Active() leaked a %s result", r.Status)
		}
	}
}
