// internal/whatsapp/checker_test.go
package whatsapp

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"linkscout/internal/core/domain"
	"linkscout/internal/testutil"
)

const (
	testCode = "AbCdEfGhIjKlMnOpQrStUv"
	testLink = domain.InvitePrefix + testCode
	testLogo = "https://pps.whatsapp.net/v/t61.24694-24/photo.jpg?ccb=11-4&oh=abc"
)

const activePage = `<!DOCTYPE html><html><head>
<meta property="og:title" content="Book Club"/>
<meta property="og:description" content="Group &middot; 1,024 members"/>
</head><body>
<div class="preview"><img src="` + testLogo + `&oe=def"/></div>
</body></html>`

const expiredTextPage = `<html><head>
<meta property="og:title" content="WhatsApp"/>
</head><body><p>This invite link has expired. Ask an admin for a new one.</p></body></html>`

const noImagePage = `<html><head>
<meta property="og:title" content="Ghost Group"/>
</head><body><p>Follow this link to join my group.</p>
<img src="https://static.example.com/sprite.png"/>
</body></html>`

const untitledPage = `<html><head></head><body>
<img src="` + testLogo + `&oe=def"/>
</body></html>`

// timeoutError mimics a network timeout surfaced by the transport.
type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func newChecker(t *testing.T, transport http.RoundTripper, probe bool) *Checker {
	t.Helper()
	return New(Config{Transport: transport, ProbeLogo: probe}, testutil.NewTestLogger())
}

func serve(body string) testutil.RoundTripFunc {
	return func(req *http.Request) (*http.Response, error) {
		return testutil.HTMLResponse(req, body), nil
	}
}

func TestValidateActive(t *testing.T) {
	checker := newChecker(t, serve(activePage), false)

	result := checker.Validate(context.Background(), testLink)

	if result.Status != domain.StatusActive {
		t.Fatalf("status = %s, expected active (%s)", result.Status, result.ErrorDetail)
	}
	if result.GroupName != "Book Club" {
		t.Errorf("group name = %q, expected Book Club", result.GroupName)
	}
	if !strings.HasPrefix(result.LogoURL, testLogo) {
		t.Errorf("logo = %q, expected the signed CDN image", result.LogoURL)
	}
	if result.MemberCount != 1024 {
		t.Errorf("member count = %d, expected 1024", result.MemberCount)
	}
	if err := result.Validate(); err != nil {
		t.Errorf("result violates its own invariants: %v", err)
	}
}

func TestValidateExpiredRedirect(t *testing.T) {
	transport := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Hostname() == domain.InviteHost {
			return testutil.RedirectResponse(req, "https://www.whatsapp.com/"), nil
		}
		return testutil.HTMLResponse(req, "<html><body>WhatsApp homepage</body></html>"), nil
	})
	checker := newChecker(t, transport, false)

	result := checker.Validate(context.Background(), testLink)

	if result.Status != domain.StatusExpired {
		t.Fatalf("status = %s, expected expired", result.Status)
	}
	if result.GroupName != domain.ExpiredGroup {
		t.Errorf("group name = %q, expected %q", result.GroupName, domain.ExpiredGroup)
	}
	if result.LogoURL != "" {
		t.Errorf("expired result should carry no logo, got %q", result.LogoURL)
	}
}

func TestValidateExpiredByText(t *testing.T) {
	checker := newChecker(t, serve(expiredTextPage), false)

	result := checker.Validate(context.Background(), testLink)
	if result.Status != domain.StatusExpired {
		t.Fatalf("status = %s, expected expired", result.Status)
	}
}

func TestValidateExpiredNoImage(t *testing.T) {
	// resolved on-domain, no expiration text, but no qualifying preview
	// image either: the image is the authoritative liveness signal
	checker := newChecker(t, serve(noImagePage), false)

	result := checker.Validate(context.Background(), testLink)
	if result.Status != domain.StatusExpired {
		t.Fatalf("status = %s, expected expired", result.Status)
	}
}

func TestValidateUnnamedGroup(t *testing.T) {
	checker := newChecker(t, serve(untitledPage), false)

	result := checker.Validate(context.Background(), testLink)
	if result.Status != domain.StatusActive {
		t.Fatalf("status = %s, expected active", result.Status)
	}
	if result.GroupName != domain.UnnamedGroup {
		t.Errorf("group name = %q, expected the %q sentinel", result.GroupName, domain.UnnamedGroup)
	}
	if result.MemberCount != 0 {
		t.Errorf("member count = %d, expected unset", result.MemberCount)
	}
}

func TestValidateInvalidWithoutNetwork(t *testing.T) {
	recorder := testutil.NewRequestRecorder(func(req *http.Request) (*http.Response, error) {
		t.Fatal("malformed candidates must never hit the network")
		return nil, nil
	})
	checker := newChecker(t, recorder, false)

	tests := []string{
		"https://example.com/not-a-group",
		domain.InvitePrefix,                // bare domain
		domain.InvitePrefix + testCode[:8], // short token
		"not a url at all",
	}

	for _, candidate := range tests {
		t.Run(candidate, func(t *testing.T) {
			result := checker.Validate(context.Background(), candidate)
			if result.Status != domain.StatusInvalid {
				t.Errorf("status = %s, expected invalid", result.Status)
			}
			if result.GroupName != domain.UnknownGroup {
				t.Errorf("group name = %q, expected the %q sentinel", result.GroupName, domain.UnknownGroup)
			}
		})
	}

	if recorder.Count() != 0 {
		t.Errorf("recorded %d network calls, expected 0", recorder.Count())
	}
}

func TestValidateTransportError(t *testing.T) {
	transport := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, timeoutError{}
	})
	checker := newChecker(t, transport, false)

	result := checker.Validate(context.Background(), testLink)

	if result.Status != domain.StatusError {
		t.Fatalf("status = %s, expected error", result.Status)
	}
	if !strings.Contains(result.ErrorDetail, "timeout") {
		t.Errorf("error detail %q should mention the timeout", result.ErrorDetail)
	}
	if result.GroupName != domain.UnknownGroup {
		t.Errorf("group name = %q, expected the %q sentinel", result.GroupName, domain.UnknownGroup)
	}
}

func TestValidateHTTPErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		detail string
	}{
		{"service unavailable", http.StatusServiceUnavailable, "HTTP 503"},
		{"rate limited", http.StatusTooManyRequests, "HTTP 429"},
		{"not found", http.StatusNotFound, "HTTP 404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				return testutil.Response(req, tt.status, "try later"), nil
			})
			checker := newChecker(t, transport, false)

			result := checker.Validate(context.Background(), testLink)
			if result.Status != domain.StatusError {
				t.Fatalf("status = %s, expected error", result.Status)
			}
			if result.ErrorDetail != tt.detail {
				t.Errorf("error detail = %q, expected %q", result.ErrorDetail, tt.detail)
			}
		})
	}
}

func TestValidateLogoProbe(t *testing.T) {
	tests := []struct {
		name        string
		probeStatus int
		wantStatus  domain.LinkStatus
	}{
		{"probe confirms logo", http.StatusOK, domain.StatusActive},
		{"probe rejects logo", http.StatusNotFound, domain.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				if req.Method == http.MethodHead {
					return testutil.Response(req, tt.probeStatus, ""), nil
				}
				return testutil.HTMLResponse(req, activePage), nil
			})
			checker := newChecker(t, transport, true)

			result := checker.Validate(context.Background(), testLink)
			if result.Status != tt.wantStatus {
				t.Errorf("status = %s, expected %s", result.Status, tt.wantStatus)
			}
			if tt.wantStatus == domain.StatusExpired && result.LogoURL != "" {
				t.Errorf("discarded logo should not be reported, got %q", result.LogoURL)
			}
		})
	}
}

func TestValidateRateLimited(t *testing.T) {
	checker := New(Config{
		Transport: serve(activePage),
		RateLimit: 20, // 50ms between fetches after the burst
	}, testutil.NewTestLogger())

	start := time.Now()
	for i := 0; i < 2; i++ {
		result := checker.Validate(context.Background(), testLink)
		if result.Status != domain.StatusActive {
			t.Fatalf("status = %s, expected active", result.Status)
		}
	}

	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("second validation completed after %s, fetch was not rate limited", elapsed)
	}
}

func TestValidateIdempotentStatus(t *testing.T) {
	checker := newChecker(t, serve(activePage), false)

	first := checker.Validate(context.Background(), testLink)
	second := checker.Validate(context.Background(), testLink)

	if first.Status != second.Status {
		t.Errorf("status flapped between runs: %s then %s", first.Status, second.Status)
	}
}

func TestMemberCountVariants(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want int
	}{
		{"plain count", "Group · 42 members", 42},
		{"comma separator", "Group · 1,024 members", 1024},
		{"dot separator", "Grupo · 1.024 members", 1024},
		{"no count", "Use WhatsApp to join this group", 0},
		{"no description", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page string
			if tt.desc != "" {
				page = `<html><head><meta property="og:description" content="` + tt.desc + `"/></head><body><img src="` + testLogo + `&oe=def"/></body></html>`
			} else {
				page = untitledPage
			}
			checker := newChecker(t, serve(page), false)

			result := checker.Validate(context.Background(), testLink)
			if result.MemberCount != tt.want {
				t.Errorf("member count = %d, expected %d", result.MemberCount, tt.want)
			}
		})
	}
}
