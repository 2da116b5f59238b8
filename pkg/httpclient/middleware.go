package httpclient

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// middlewareTransport stamps identification headers on each request.
type middlewareTransport struct {
	base      http.RoundTripper
	userAgent string
	headers   http.Header
}

// Wrap returns base with the identification middleware. An empty userAgent
// uses defaults.UserAgent(""). A nil base uses http.DefaultTransport.
func Wrap(base http.RoundTripper, userAgent string, headers http.Header) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if userAgent == "" {
		userAgent = defaults.UserAgent("")
	}
	return &middlewareTransport{base: base, userAgent: userAgent, headers: headers.Clone()}
}

// RoundTrip implements http.RoundTripper. The caller's request is cloned,
// never mutated. A request ID already set by the caller is kept.
func (m *middlewareTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", m.userAgent)
	}
	if r.Header.Get(RequestIDHeader) == "" {
		r.Header.Set(RequestIDHeader, uuid.NewString())
	}
	for key, vals := range m.headers {
		for _, v := range vals {
			r.Header.Add(key, v)
		}
	}
	return m.base.RoundTrip(r)
}

// RequestID returns the correlation ID that will be (or was) sent with req.
// It sets one on req when absent, so callers can log it before sending.
func RequestID(req *http.Request) string {
	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req.Header.Set(RequestIDHeader, id)
	}
	return id
}
