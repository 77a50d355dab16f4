// Package correlation tags outbound HTTP requests with a fresh correlation id.
package correlation

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// HeaderName carries the correlation id. Downstream services key their logs on it,
// so the spelling is part of the wire contract.
const HeaderName = "X-Correlation-Id"

// Transport is an http.RoundTripper that sets HeaderName on every request it forwards.
// It never mutates the caller's request and is safe for concurrent use.
type Transport struct {
	next  http.RoundTripper
	newID func() (string, error)
}

type Option func(*Transport)

// WithGenerator replaces the UUIDv4 generator.
func WithGenerator(fn func() (string, error)) Option {
	return func(t *Transport) {
		if fn != nil {
			t.newID = fn
		}
	}
}

// NewTransport wraps next; a nil next uses http.DefaultTransport.
func NewTransport(next http.RoundTripper, opts ...Option) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	t := &Transport{next: next, newID: newUUID}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RoundTrip forwards a copy of req carrying a new correlation id and returns next's
// result unchanged. If no id can be generated the request is not sent.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	id, err := t.newID()
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("correlation: generate id: %w", err)
	}
	out := req.Clone(req.Context())
	out.Header.Set(HeaderName, id)
	return t.next.RoundTrip(out)
}

// NewClient returns a shallow copy of base whose transport tags every request.
// A nil base behaves like http.DefaultClient.
func NewClient(base *http.Client) *http.Client {
	c := &http.Client{}
	if base != nil {
		*c = *base
	}
	c.Transport = NewTransport(c.Transport)
	return c
}

// FromRequest returns the correlation id carried by r, or "".
func FromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get(HeaderName)
}

func newUUID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
