// internal/core/ports/ports.go
package ports

import (
	"context"
	"io"

	"linkscout/internal/core/domain"
)

// Discoverer is the primary port for anything that can produce source URLs
// worth scanning for invite links (a search engine, a fixed page list, ...).
type Discoverer interface {
	// Name returns the unique name of the discoverer (e.g. "google")
	Name() string

	// Discover returns the source URLs found for the query across the given
	// number of result pages. It never fails hard: unreachable or unparsable
	// pages contribute nothing, and an empty slice with a nil error means
	// "nothing found" rather than failure.
	Discover(ctx context.Context, query string, pages int) ([]string, error)
}

// Validator classifies a single candidate link. Implementations must always
// return a fully populated result; network failures become StatusError, they
// never escape as errors.
type Validator interface {
	Validate(ctx context.Context, candidate string) domain.ValidationResult
}

// ProgressFunc is invoked by the coordinator after each completed validation
// with the number of completions so far and the batch total. Invocations are
// serialized; implementations need no locking of their own.
type ProgressFunc func(done, total int)

// Exporter serializes a finished batch to a writer.
type Exporter interface {
	Export(w io.Writer, batch *domain.ValidationBatch) error
}
