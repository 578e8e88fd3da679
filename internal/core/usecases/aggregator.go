// internal/core/usecases/aggregator.go
package usecases

import (
	"context"
	"net/http"
	"time"

	"linkscout/internal/core/domain"
	"linkscout/internal/extract"
	"linkscout/internal/platform/httpclient"
	"linkscout/internal/platform/logx"
)

// AggregatorConfig configures source-page fetching.
type AggregatorConfig struct {
	// Timeout per source-page fetch.
	// Default: 12 seconds
	Timeout time.Duration

	// RateLimit caps source-page fetches per second. 0 disables the cap.
	RateLimit float64

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Aggregator merges candidate links from discovered source pages or from raw
// user input into a deduplicated CandidateSet.
type Aggregator struct {
	client *httpclient.Client
	logger logx.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(cfg AggregatorConfig, logger logx.Logger) *Aggregator {
	if cfg.Timeout == 0 {
		cfg.Timeout = 12 * time.Second
	}

	return &Aggregator{
		client: httpclient.New(httpclient.Config{
			Timeout:         cfg.Timeout,
			RateLimit:       cfg.RateLimit,
			Transport:       cfg.Transport,
			FollowRedirects: true,
		}, logger),
		logger: logger.With("component", "aggregator"),
	}
}

// FromSources fetches each source URL and extracts the invite links from its
// body. A source that fails to fetch contributes nothing; the run never
// aborts. The returned set is duplicate-free and order-independent.
func (a *Aggregator) FromSources(ctx context.Context, sourceURLs []string) *domain.CandidateSet {
	set := domain.NewCandidateSet()

	for _, src := range sourceURLs {
		if ctx.Err() != nil {
			a.logger.Debug("aggregation cancelled", "scanned", set.Len())
			break
		}

		links, err := a.scan(ctx, src)
		if err != nil {
			a.logger.Warn("source page skipped", "url", src, "error", err.Error())
			continue
		}

		added := 0
		for _, link := range links {
			if set.AddLink(link) {
				added++
			}
		}
		a.logger.Debug("source page scanned", "url", src, "found", len(links), "new", added)
	}

	a.logger.Info("aggregation finished", "sources", len(sourceURLs), "candidates", set.Len())
	return set
}

// FromRaw aggregates user-supplied items without any network fetch. Each
// item is either a link (canonicalized so share-URL variants collapse) or a
// block of text/HTML to scan. Items that are neither stay in the set as-is
// and surface downstream as Invalid results instead of vanishing silently.
func (a *Aggregator) FromRaw(items []string) *domain.CandidateSet {
	set := domain.NewCandidateSet()

	for _, item := range items {
		if link, err := domain.ParseInviteLink(item); err == nil {
			set.AddLink(link)
			continue
		}
		if links := extract.Links(item); len(links) > 0 {
			for _, link := range links {
				set.AddLink(link)
			}
			continue
		}
		set.Add(item)
	}

	a.logger.Debug("raw input aggregated", "items", len(items), "candidates", set.Len())
	return set
}

// scan fetches one source page and extracts its invite links.
func (a *Aggregator) scan(ctx context.Context, sourceURL string) ([]domain.InviteLink, error) {
	resp, err := a.client.Get(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	body, err := httpclient.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	return extract.Links(string(body)), nil
}
