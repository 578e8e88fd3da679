// internal/core/usecases/coordinator.go
package usecases

import (
	"context"
	"sync"

	"linkscout/internal/core/domain"
	"linkscout/internal/core/ports"
	"linkscout/internal/platform/logx"
)

// DefaultWorkers is the validation concurrency used when none is configured.
// The platform throttles clients that probe invites at unbounded concurrency,
// so real deployments stay in the 3-5 range.
const DefaultWorkers = 4

// Coordinator schedules validator calls over a candidate set under a bounded
// worker budget and collects results in completion order.
type Coordinator struct {
	validator ports.Validator
	workers   int
	logger    logx.Logger
}

// NewCoordinator creates a coordinator. Non-positive worker counts fall back
// to DefaultWorkers.
func NewCoordinator(validator ports.Validator, workers int, logger logx.Logger) *Coordinator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Coordinator{
		validator: validator,
		workers:   workers,
		logger:    logger.With("component", "coordinator"),
	}
}

// Run validates every candidate and returns the batch. Results are appended
// as workers finish, so batch order is completion order, not submission
// order: progress reporting reflects real wall-clock completion. The progress
// callback, when given, runs under the batch lock after each completion and
// therefore needs no synchronization of its own.
//
// There is no per-task retry: one Error result is final. Cancelling ctx makes
// in-flight validations fail fast into Error results; the batch is never left
// in a corrupt state.
func (c *Coordinator) Run(ctx context.Context, candidates *domain.CandidateSet, progress ports.ProgressFunc) *domain.ValidationBatch {
	items := candidates.Values()
	batch := domain.NewValidationBatch(len(items))
	if len(items) == 0 {
		batch.Finalize()
		return batch
	}

	c.logger.Info("validation started", "candidates", len(items), "workers", c.workers)

	sem := make(chan struct{}, c.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for _, candidate := range items {
		wg.Add(1)
		go func(candidate string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			result := c.validator.Validate(ctx, candidate)

			// Single writer at a time: the batch and the progress counter
			// share one critical section.
			mu.Lock()
			batch.Append(result)
			done++
			if progress != nil {
				progress(done, batch.Metadata.Total)
			}
			mu.Unlock()

			c.logger.Debug("candidate validated", "link", candidate, "status", result.Status)
		}(candidate)
	}

	wg.Wait()
	batch.Finalize()

	c.logger.Info("validation finished",
		"results", batch.Len(),
		"duration_ms", batch.Metadata.Duration.Milliseconds(),
	)

	return batch
}
