package middleware

import (
	"net/http"
	"strings"

	"github.com/lumicart/storefront/api/responses"
	"github.com/lumicart/storefront/internal/identity"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
	"github.com/lumicart/storefront/pkg/logger"
)

// Auth verifies the bearer token on protected routes and places the customer
// profile into the request context.
func Auth(verifier *identity.Verifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := bearerToken(r)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			profile, err := verifier.Verify(ctx, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithProfile(ctx, profile)
			if logg != nil && profile.Email != "" {
				ctx = logg.WithCustomerEmail(ctx, profile.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header required")
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must be a bearer token")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token is empty")
	}
	return token, nil
}
