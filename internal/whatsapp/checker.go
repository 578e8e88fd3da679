// internal/whatsapp/checker.go

// Package whatsapp validates group invite links against the platform and
// extracts the metadata a live invite page exposes. One call, one fully
// populated result; failures are data (StatusError), never panics or errors.
package whatsapp

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkscout/internal/core/domain"
	"linkscout/internal/platform/errors"
	"linkscout/internal/platform/httpclient"
	"linkscout/internal/platform/logx"
)

// expirePhrases are the platform-emitted dead-invite markers. Any of them in
// the visible page text classifies the link Expired before metadata is read.
var expirePhrases = []string{"expired", "invalid", "doesn't exist"}

// memberCount matches the "512 members" fragment the invite page puts in its
// Open Graph description. Thousands separators vary by locale.
var memberCount = regexp.MustCompile(`([0-9][0-9.,]*)\s+members`)

// Config configures the checker.
type Config struct {
	// Timeout for the invite page fetch.
	// Default: 10 seconds
	Timeout time.Duration

	// ProbeTimeout for the optional logo existence probe.
	// Default: 5 seconds
	ProbeTimeout time.Duration

	// ProbeLogo enables a HEAD probe of the candidate preview image; on a
	// non-2xx answer the logo is discarded rather than failing the record.
	ProbeLogo bool

	// RateLimit caps invite-page fetches per second across all workers.
	// The platform throttles aggressive clients; 0 disables the cap.
	RateLimit float64

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// DefaultConfig returns the default checker configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:      10 * time.Second,
		ProbeTimeout: 5 * time.Second,
		ProbeLogo:    false,
	}
}

// Checker validates invite links. It is safe for concurrent use; all state
// lives in the HTTP clients, which are themselves concurrency-safe.
type Checker struct {
	client *httpclient.Client
	probe  *httpclient.Client
	config Config
	logger logx.Logger
}

// New creates a checker with the given configuration.
func New(cfg Config, logger logx.Logger) *Checker {
	def := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = def.ProbeTimeout
	}

	return &Checker{
		client: httpclient.New(httpclient.Config{
			Timeout:         cfg.Timeout,
			RateLimit:       cfg.RateLimit,
			Transport:       cfg.Transport,
			FollowRedirects: true,
		}, logger),
		probe: httpclient.New(httpclient.Config{
			Timeout:         cfg.ProbeTimeout,
			Transport:       cfg.Transport,
			FollowRedirects: true,
		}, logger),
		config: cfg,
		logger: logger.With("component", "checker"),
	}
}

// Validate classifies one candidate link. The state machine runs
// cheapest-reject-first: shape, then transport, then the final domain, then
// expiration text, and only then metadata extraction. A single pass, no
// retries; an Error result is final and the caller may re-submit.
func (c *Checker) Validate(ctx context.Context, candidate string) domain.ValidationResult {
	result := domain.ValidationResult{Link: candidate}

	// Shape precheck: malformed strings never reach the network. The page
	// was never read, so the name stays at the "nothing known" sentinel.
	link, err := domain.ParseInviteLink(candidate)
	if err != nil {
		result.Status = domain.StatusInvalid
		result.GroupName = domain.UnknownGroup
		return result
	}

	resp, err := c.client.Get(ctx, link.String())
	if err != nil {
		result.Status = domain.StatusError
		result.GroupName = domain.UnknownGroup
		result.ErrorDetail = describeTransportError(err)
		return result
	}

	body, err := httpclient.ReadBody(resp)
	if err != nil {
		result.Status = domain.StatusError
		result.GroupName = domain.UnknownGroup
		result.ErrorDetail = fmt.Sprintf("reading response: %v", err)
		return result
	}

	// A 4xx/5xx on the resolved endpoint is a transient or server condition,
	// not a structurally wrong link: Error, not Invalid.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Status = domain.StatusError
		result.GroupName = domain.UnknownGroup
		result.ErrorDetail = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return result
	}

	// Dead invites redirect off the chat domain (sometimes to the platform
	// homepage, sometimes elsewhere); either way no metadata is recoverable.
	finalURL := resp.Request.URL
	if !strings.EqualFold(finalURL.Hostname(), domain.InviteHost) {
		c.logger.Debug("invite redirected off-domain", "link", candidate, "final", finalURL.String())
		result.Status = domain.StatusExpired
		result.GroupName = domain.ExpiredGroup
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		result.Status = domain.StatusError
		result.GroupName = domain.UnknownGroup
		result.ErrorDetail = fmt.Sprintf("parsing response: %v", err)
		return result
	}

	if hasExpirePhrase(doc) {
		result.Status = domain.StatusExpired
		result.GroupName = domain.ExpiredGroup
		return result
	}

	// Metadata. A missing title alone does not downgrade the status.
	result.GroupName = groupName(doc)
	result.MemberCount = members(doc)
	result.LogoURL = c.findLogo(ctx, doc)

	// The preview image is the authoritative liveness signal: the platform
	// renders one only for groups that still accept the invite. Textual
	// markers are not reliably present on every page variant.
	if result.LogoURL == "" {
		result.Status = domain.StatusExpired
		result.GroupName = domain.ExpiredGroup
		return result
	}

	result.Status = domain.StatusActive
	return result
}

// hasExpirePhrase scans the visible page text for dead-invite markers.
func hasExpirePhrase(doc *goquery.Document) bool {
	text := strings.ToLower(doc.Find("body").Text())
	for _, phrase := range expirePhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// groupName extracts the Open Graph title, falling back to the sentinel.
func groupName(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	name := strings.TrimSpace(html.UnescapeString(content))
	if name == "" {
		return domain.UnnamedGroup
	}
	return name
}

// members parses the member count out of the Open Graph description.
// Absence leaves the count at zero, which the result treats as unset.
func members(doc *goquery.Document) int {
	desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content")
	if !ok {
		return 0
	}
	m := memberCount.FindStringSubmatch(desc)
	if m == nil {
		return 0
	}
	digits := strings.NewReplacer(",", "", ".", "").Replace(m[1])
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// findLogo scans the image elements for a signed preview URL, optionally
// probing each candidate. A candidate that fails the probe is discarded and
// the scan continues.
func (c *Checker) findLogo(ctx context.Context, doc *goquery.Document) string {
	var logo string
	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok {
			return true
		}
		src = html.UnescapeString(src)
		if !domain.IsMediaURL(src) {
			return true
		}
		if c.config.ProbeLogo && !c.logoExists(ctx, src) {
			c.logger.Debug("discarding unreachable logo", "url", src)
			return true
		}
		logo = src
		return false
	})
	return logo
}

// logoExists performs the lightweight HEAD probe on a candidate image URL.
func (c *Checker) logoExists(ctx context.Context, url string) bool {
	resp, err := c.probe.Head(ctx, url)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// describeTransportError turns a network-level failure into the detail text
// stored on the result, normalizing timeouts so callers can match on them.
func describeTransportError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("timeout: %v", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timeout: %v", err)
	}
	return err.Error()
}
