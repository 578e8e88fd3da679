// internal/core/domain/batch.go
package domain

import (
	"fmt"
	"time"
)

// ValidationBatch collects the results of one coordinator run, in completion
// order. It is read-only once Finalize has been called.
type ValidationBatch struct {
	// Results completed validations, appended as workers finish
	Results []ValidationResult

	// Metadata timing information about the run
	Metadata BatchMetadata
}

// BatchMetadata holds timing information about a coordinator run.
type BatchMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Total number of candidates submitted; equals len(Results) after a
	// completed run, and exceeds it after an abandoned one
	Total int
}

// NewValidationBatch creates a batch for the given number of candidates.
func NewValidationBatch(total int) *ValidationBatch {
	return &ValidationBatch{
		Results: make([]ValidationResult, 0, total),
		Metadata: BatchMetadata{
			StartTime: time.Now(),
			Total:     total,
		},
	}
}

// Append adds a completed result. Callers must serialize access; the
// coordinator holds its results mutex while calling this.
func (b *ValidationBatch) Append(r ValidationResult) {
	b.Results = append(b.Results, r)
}

// Finalize stamps the end of the run.
func (b *ValidationBatch) Finalize() {
	b.Metadata.EndTime = time.Now()
	b.Metadata.Duration = b.Metadata.EndTime.Sub(b.Metadata.StartTime)
}

// Len returns the number of completed results.
func (b *ValidationBatch) Len() int {
	return len(b.Results)
}

// Summary returns a one-line description of the batch.
func (b *ValidationBatch) Summary() string {
	return fmt.Sprintf("ValidationBatch{results=%d, total=%d, duration=%s}",
		len(b.Results), b.Metadata.Total, b.Metadata.Duration)
}
