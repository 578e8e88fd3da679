// internal/core/usecases/pipeline.go
package usecases

import (
	"context"

	"linkscout/internal/core/domain"
	"linkscout/internal/core/ports"
	"linkscout/internal/platform/logx"
)

// Pipeline wires discovery, aggregation, validation and classification into
// the two entry points callers use: a search query or a list of raw items.
// Each run is self-contained; nothing persists between invocations and
// separate callers may run pipelines in parallel.
type Pipeline struct {
	discoverer  ports.Discoverer
	aggregator  *Aggregator
	coordinator *Coordinator
	classifier  *Classifier
	logger      logx.Logger
}

// PipelineOptions configures a pipeline.
type PipelineOptions struct {
	Discoverer  ports.Discoverer
	Aggregator  *Aggregator
	Coordinator *Coordinator
	Logger      logx.Logger
}

// NewPipeline creates a pipeline.
func NewPipeline(opts PipelineOptions) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &Pipeline{
		discoverer:  opts.Discoverer,
		aggregator:  opts.Aggregator,
		coordinator: opts.Coordinator,
		classifier:  NewClassifier(),
		logger:      opts.Logger.With("component", "pipeline"),
	}
}

// Classifier exposes the classifier for callers that want filtered views of
// the returned batch.
func (p *Pipeline) Classifier() *Classifier {
	return p.classifier
}

// RunQuery discovers source pages for the query, aggregates the invite links
// they contain and validates them. An empty query is ErrEmptyInput; a query
// that discovers nothing is ErrNoCandidates. The two are different outcomes
// on different paths, never to be conflated.
func (p *Pipeline) RunQuery(ctx context.Context, query string, pages int, progress ports.ProgressFunc) (*domain.ValidationBatch, error) {
	if query == "" {
		return nil, domain.ErrEmptyInput
	}

	sourceURLs, err := p.discoverer.Discover(ctx, query, pages)
	if err != nil {
		return nil, err
	}
	if len(sourceURLs) == 0 {
		p.logger.Info("discovery found no source pages", "query", query)
		return nil, domain.ErrNoCandidates
	}

	candidates := p.aggregator.FromSources(ctx, sourceURLs)
	if candidates.Len() == 0 {
		p.logger.Info("source pages contained no invite links", "sources", len(sourceURLs))
		return nil, domain.ErrNoCandidates
	}

	return p.coordinator.Run(ctx, candidates, progress), nil
}

// RunList validates user-supplied items (links or text blocks) without any
// discovery. Blank input is ErrEmptyInput.
func (p *Pipeline) RunList(ctx context.Context, items []string, progress ports.ProgressFunc) (*domain.ValidationBatch, error) {
	candidates := p.aggregator.FromRaw(items)
	if candidates.Len() == 0 {
		return nil, domain.ErrEmptyInput
	}

	return p.coordinator.Run(ctx, candidates, progress), nil
}
