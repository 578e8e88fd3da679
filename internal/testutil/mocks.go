// internal/testutil/mocks.go
package testutil

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// RoundTripFunc lets tests stand in for the network: plug it into
// httpclient.Config.Transport and every request in the test is answered
// in-process, redirects included (the http.Client drives the transport
// again for each hop).
type RoundTripFunc func(req *http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// HTMLResponse builds a 200 text/html response for the given request.
func HTMLResponse(req *http.Request, body string) *http.Response {
	return Response(req, http.StatusOK, body)
}

// Response builds a response with an arbitrary status for the given request.
func Response(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
		Request:    req,
	}
}

// RedirectResponse builds a 302 pointing at location.
func RedirectResponse(req *http.Request, location string) *http.Response {
	resp := Response(req, http.StatusFound, "")
	resp.Header.Set("Location", location)
	return resp
}

// RequestRecorder wraps a RoundTripFunc and counts the requests that pass
// through it, so tests can assert "zero network calls" style properties.
type RequestRecorder struct {
	mu    sync.Mutex
	next  RoundTripFunc
	urls  []string
	count int
}

// NewRequestRecorder creates a recorder delegating to next.
func NewRequestRecorder(next RoundTripFunc) *RequestRecorder {
	return &RequestRecorder{next: next}
}

// RoundTrip implements http.RoundTripper.
func (r *RequestRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	r.mu.Lock()
	r.count++
	r.urls = append(r.urls, req.URL.String())
	r.mu.Unlock()
	return r.next(req)
}

// Count returns the number of requests observed.
func (r *RequestRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// URLs returns the request URLs observed, in order.
func (r *RequestRecorder) URLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.urls...)
}
