// internal/core/domain/candidate_set.go
package domain

import "strings"

// CandidateSet accumulates unique candidate links during one discovery run.
// Extraction-sourced candidates are always shape-valid; raw-input candidates
// may not be, so the validator still classifies each entry on its own.
// The set is discarded after handoff to the coordinator.
type CandidateSet struct {
	seen  map[string]struct{}
	order []string
}

// NewCandidateSet creates an empty candidate set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{seen: make(map[string]struct{})}
}

// Add inserts a trimmed candidate, reporting whether it was new.
// Empty strings are rejected.
func (c *CandidateSet) Add(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if _, dup := c.seen[s]; dup {
		return false
	}
	c.seen[s] = struct{}{}
	c.order = append(c.order, s)
	return true
}

// AddLink inserts a shape-validated invite link.
func (c *CandidateSet) AddLink(link InviteLink) bool {
	return c.Add(link.String())
}

// Contains reports whether the candidate is already in the set.
func (c *CandidateSet) Contains(raw string) bool {
	_, ok := c.seen[strings.TrimSpace(raw)]
	return ok
}

// Len returns the number of unique candidates.
func (c *CandidateSet) Len() int {
	return len(c.order)
}

// Values returns the candidates in insertion order. Downstream semantics do
// not depend on this order; it only keeps runs reproducible.
func (c *CandidateSet) Values() []string {
	return append([]string{}, c.order...)
}
