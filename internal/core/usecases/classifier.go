// internal/core/usecases/classifier.go
package usecases

import (
	"linkscout/internal/core/domain"
)

// Classifier partitions a finished batch by status. Counts and filtered
// views are computed on demand from the immutable batch; nothing is cached.
type Classifier struct{}

// NewClassifier creates a classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Counts returns the number of results per status. Every status appears in
// the map, zero-valued if absent, and the values always sum to the batch
// size.
func (c *Classifier) Counts(batch *domain.ValidationBatch) map[domain.LinkStatus]int {
	counts := make(map[domain.LinkStatus]int, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		counts[s] = 0
	}
	for _, r := range batch.Results {
		counts[r.Status]++
	}
	return counts
}

// Filter returns the results whose status is in the given set, preserving
// the batch's completion order.
func (c *Classifier) Filter(batch *domain.ValidationBatch, statuses ...domain.LinkStatus) []domain.ValidationResult {
	if len(statuses) == 0 {
		return []domain.ValidationResult{}
	}

	wanted := make(map[domain.LinkStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	filtered := make([]domain.ValidationResult, 0)
	for _, r := range batch.Results {
		if wanted[r.Status] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Active is a convenience view of the live groups, the subset most callers
// care about.
func (c *Classifier) Active(batch *domain.ValidationBatch) []domain.ValidationResult {
	return c.Filter(batch, domain.StatusActive)
}
