package identity

import (
	"context"
	"strings"
	"sync"

	"github.com/lumicart/storefront/pkg/auth"
	"github.com/lumicart/storefront/pkg/config"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/types"
)

// Profile is the authenticated customer context handed to checkout.
type Profile struct {
	Subject string
	Name    string
	Email   string
}

// Customer splits the profile name into the customer form fields.
func (p Profile) Customer() types.Customer {
	first, last := splitName(p.Name)
	return types.Customer{FirstName: first, LastName: last, Email: p.Email}
}

// Verifier validates IdP-issued bearer tokens and caches the resolved
// profile per token, so repeated requests in a session verify once.
type Verifier struct {
	cfg config.JWTConfig

	mu    sync.Mutex
	cache map[string]Profile
}

// NewVerifier builds a token verifier from the JWT configuration.
func NewVerifier(cfg config.JWTConfig) *Verifier {
	return &Verifier{cfg: cfg, cache: make(map[string]Profile)}
}

// Verify parses and validates the bearer token, returning the customer
// profile carried in its claims.
func (v *Verifier) Verify(_ context.Context, tokenString string) (Profile, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Profile{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token required")
	}

	v.mu.Lock()
	cached, ok := v.cache[tokenString]
	v.mu.Unlock()
	if ok {
		return cached, nil
	}

	claims, err := auth.ParseProfileToken(v.cfg, tokenString)
	if err != nil {
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid bearer token")
	}

	profile := Profile{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
	}

	v.mu.Lock()
	v.cache[tokenString] = profile
	v.mu.Unlock()
	return profile, nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch {
	case len(parts) == 0:
		return "", ""
	case len(parts) == 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
