package identity

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// TokenSource supplies the bearer credential attached to secured outbound
// calls. Implementations may cache or refresh tokens internally.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns the same token for every call, for
// service-to-service credentials configured at startup.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no bearer token configured")
	}
	return string(s), nil
}

// Transport is an http.RoundTripper that attaches a bearer token to requests
// targeting the secured endpoint prefixes. All other requests pass through
// untouched.
type Transport struct {
	base     http.RoundTripper
	source   TokenSource
	prefixes []string
}

// NewTransport wraps base so requests whose URL starts with one of the
// secured prefixes carry an Authorization header. A nil base falls back to
// http.DefaultTransport.
func NewTransport(base http.RoundTripper, source TokenSource, securedPrefixes []string) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	prefixes := make([]string, 0, len(securedPrefixes))
	for _, p := range securedPrefixes {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			prefixes = append(prefixes, trimmed)
		}
	}
	return &Transport{base: base, source: source, prefixes: prefixes}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source == nil || !t.secured(req.URL.String()) {
		return t.base.RoundTrip(req)
	}

	token, err := t.source.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("acquire bearer token: %w", err)
	}

	// clone before mutating, per the RoundTripper contract
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}

func (t *Transport) secured(url string) bool {
	for _, prefix := range t.prefixes {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}
