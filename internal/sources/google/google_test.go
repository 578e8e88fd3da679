// internal/sources/google/google_test.go
package google

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"linkscout/internal/testutil"
)

const serpPage = `<html><body>
<a href="/url?q=https%3A%2F%2Fforum.example.com%2Fthread%2F42&sa=U">result one</a>
<a href="/url?q=https%3A%2F%2Fblog.example.org%2Fgroups&sa=U">result two</a>
<a href="https://direct.example.net/listing">unwrapped result</a>
<a href="/search?q=related">related search</a>
<a href="https://maps.google.com/place/x">engine internal</a>
<a href="#fragment">anchor</a>
</body></html>`

func newSource(t *testing.T, transport http.RoundTripper) *Source {
	t.Helper()
	return New(Config{Transport: transport, PageDelay: time.Millisecond}, testutil.NewTestLogger())
}

func TestDiscoverDecodesRedirectWrappers(t *testing.T) {
	src := newSource(t, testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return testutil.HTMLResponse(req, serpPage), nil
	}))

	urls, err := src.Discover(context.Background(), "whatsapp group links", 1)
	testutil.AssertNoError(t, err, "discover")

	want := []string{
		"https://forum.example.com/thread/42",
		"https://blog.example.org/groups",
		"https://direct.example.net/listing",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls %v, expected %d", len(urls), urls, len(want))
	}
	for i, w := range want {
		if urls[i] != w {
			t.Errorf("url %d = %q, expected %q", i, urls[i], w)
		}
	}
}

func TestDiscoverPagination(t *testing.T) {
	recorder := testutil.NewRequestRecorder(func(req *http.Request) (*http.Response, error) {
		return testutil.HTMLResponse(req, "<html><body></body></html>"), nil
	})
	src := newSource(t, recorder)

	_, err := src.Discover(context.Background(), "book club", 3)
	testutil.AssertNoError(t, err, "discover")

	urls := recorder.URLs()
	if len(urls) != 3 {
		t.Fatalf("expected 3 page fetches, got %d", len(urls))
	}
	for i, offset := range []string{"start=0", "start=10", "start=20"} {
		if !strings.Contains(urls[i], offset) {
			t.Errorf("page %d request %q missing offset %q", i, urls[i], offset)
		}
	}
	if !strings.Contains(urls[0], "q=book+club") {
		t.Errorf("query not escaped into request: %q", urls[0])
	}
}

func TestDiscoverSwallowsPageFailures(t *testing.T) {
	var calls int
	src := newSource(t, testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 2 {
			return testutil.Response(req, http.StatusTooManyRequests, "slow down"), nil
		}
		return testutil.HTMLResponse(req, serpPage), nil
	}))

	urls, err := src.Discover(context.Background(), "q", 3)
	testutil.AssertNoError(t, err, "per-page failures must not surface")

	// pages 1 and 3 each contribute the same three URLs, deduplicated
	if len(urls) != 3 {
		t.Errorf("got %d urls, expected 3 (dedup across pages)", len(urls))
	}
	if calls != 3 {
		t.Errorf("all pages should still be attempted, got %d fetches", calls)
	}
}

func TestDiscoverEmptyIsNotAnError(t *testing.T) {
	src := newSource(t, testutil.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return testutil.HTMLResponse(req, "<html><body><p>no results</p></body></html>"), nil
	}))

	urls, err := src.Discover(context.Background(), "obscure query", 2)
	testutil.AssertNoError(t, err, "empty discovery is data, not failure")
	if len(urls) != 0 {
		t.Errorf("expected no urls, got %v", urls)
	}
}

func TestDiscoverHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recorder := testutil.NewRequestRecorder(func(req *http.Request) (*http.Response, error) {
		return testutil.HTMLResponse(req, serpPage), nil
	})
	src := newSource(t, recorder)

	_, err := src.Discover(ctx, "q", 5)
	testutil.AssertError(t, err, "cancelled context should surface")
	if recorder.Count() != 0 {
		t.Errorf("no fetches expected after cancellation, got %d", recorder.Count())
	}
}

func TestResultTarget(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"wrapped", "/url?q=https%3A%2F%2Fexample.com%2Fa&sa=U", "https://example.com/a"},
		{"absolute", "https://example.com/b", "https://example.com/b"},
		{"engine internal", "https://www.google.com/maps", ""},
		{"relative", "/search?q=x", ""},
		{"javascript", "javascript:void(0)", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resultTarget(tt.href); got != tt.want {
				t.Errorf("resultTarget(%q) = %q, expected %q", tt.href, got, tt.want)
			}
		})
	}
}
