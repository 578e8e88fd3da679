// internal/sources/google/google.go

// Package google discovers source URLs to scan for invite links by scraping
// web search result pages. Discovery is best-effort: a page that fails to
// fetch or parse contributes zero URLs, and an empty result is a terminal
// "nothing found", never an error.
package google

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkscout/internal/platform/httpclient"
	"linkscout/internal/platform/logx"
)

// resultsPerPage is the search engine's fixed page offset.
const resultsPerPage = 10

// Config configures the discoverer.
type Config struct {
	// BaseURL of the search endpoint.
	// Default: https://www.google.com/search
	BaseURL string

	// PageDelay is the blocking wait between result-page requests. Issuing
	// pages back to back trips the engine's anti-scraping defenses.
	// Default (and floor for real runs): 2 seconds
	PageDelay time.Duration

	// Timeout per result-page fetch.
	// Default: 15 seconds
	Timeout time.Duration

	// RateLimit caps result-page fetches per second. 0 disables the cap;
	// the inter-page delay is the primary pacing mechanism either way.
	RateLimit float64

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// DefaultConfig returns the default discoverer configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://www.google.com/search",
		PageDelay: 2 * time.Second,
		Timeout:   15 * time.Second,
	}
}

// Source scrapes a search engine for source URLs.
type Source struct {
	client *httpclient.Client
	config Config
	logger logx.Logger
}

// New creates the search discoverer.
func New(cfg Config, logger logx.Logger) *Source {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.PageDelay == 0 {
		cfg.PageDelay = def.PageDelay
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}

	return &Source{
		client: httpclient.New(httpclient.Config{
			Timeout:         cfg.Timeout,
			RateLimit:       cfg.RateLimit,
			Transport:       cfg.Transport,
			FollowRedirects: true,
		}, logger),
		config: cfg,
		logger: logger.With("source", "google"),
	}
}

// Name returns the unique name of the discoverer.
func (s *Source) Name() string {
	return "google"
}

// Discover fetches pageCount result pages and returns the outbound URLs they
// reference, deduplicated in encounter order. Per-page failures are swallowed;
// only context cancellation is surfaced, alongside whatever was collected.
func (s *Source) Discover(ctx context.Context, query string, pages int) ([]string, error) {
	if pages < 1 {
		pages = 1
	}

	seen := make(map[string]struct{})
	var out []string

	for page := 0; page < pages; page++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		pageURL := s.config.BaseURL + "?q=" + url.QueryEscape(query) + "&start=" + strconv.Itoa(page*resultsPerPage)

		urls, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			s.logger.Warn("result page skipped", "page", page, "error", err.Error())
		}
		for _, u := range urls {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}

		s.logger.Debug("result page scanned", "page", page, "urls", len(urls))

		// Fixed wait between pages. Deliberately a plain sleep, not a
		// cancellation point; the loop re-checks the context on entry.
		if page < pages-1 {
			time.Sleep(s.config.PageDelay)
		}
	}

	s.logger.Info("discovery finished", "query", query, "pages", pages, "urls", len(out))
	return out, nil
}

// fetchPage retrieves one result page and extracts its outbound URLs.
func (s *Source) fetchPage(ctx context.Context, pageURL string) ([]string, error) {
	resp, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if target := resultTarget(href); target != "" {
			urls = append(urls, target)
		}
	})

	return urls, nil
}

// resultTarget turns an anchor href from the result markup into a real
// outbound URL. Redirect wrappers (/url?q=...) are decoded to their
// destination; engine-internal links are dropped.
func resultTarget(href string) string {
	if strings.HasPrefix(href, "/url?") {
		q, err := url.ParseQuery(strings.TrimPrefix(href, "/url?"))
		if err != nil {
			return ""
		}
		href = q.Get("q")
	}

	u, err := url.Parse(href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || strings.Contains(host, "google.") {
		return ""
	}

	return u.String()
}
