// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"time"

	"linkscout/internal/core/domain"
)

// mockValidator returns canned statuses per link and can simulate slow links
// to exercise completion ordering.
type mockValidator struct {
	mu          sync.Mutex
	statuses    map[string]domain.LinkStatus
	delays      map[string]time.Duration
	inFlight    int
	maxInFlight int
}

func newMockValidator() *mockValidator {
	return &mockValidator{
		statuses: make(map[string]domain.LinkStatus),
		delays:   make(map[string]time.Duration),
	}
}

func (m *mockValidator) Validate(ctx context.Context, candidate string) domain.ValidationResult {
	m.mu.Lock()
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
	delay := m.delays[candidate]
	status, ok := m.statuses[candidate]
	m.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if !ok {
		status = domain.StatusActive
	}

	result := domain.ValidationResult{Link: candidate, Status: status}
	if status == domain.StatusActive {
		result.GroupName = domain.UnnamedGroup
	}
	if status == domain.StatusExpired {
		result.GroupName = domain.ExpiredGroup
	}
	if status == domain.StatusError {
		result.GroupName = domain.UnknownGroup
		result.ErrorDetail = "mock failure"
	}
	if status == domain.StatusInvalid {
		result.GroupName = domain.UnknownGroup
	}

	m.mu.Lock()
	m.inFlight--
	m.mu.Unlock()

	return result
}

func (m *mockValidator) peakConcurrency() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// mockDiscoverer returns a fixed URL list.
type mockDiscoverer struct {
	urls []string
	err  error
}

func (m *mockDiscoverer) Name() string { return "mock" }

func (m *mockDiscoverer) Discover(ctx context.Context, query string, pages int) ([]string, error) {
	return m.urls, m.err
}
