package auth

import "github.com/golang-jwt/jwt/v5"

// ProfileClaims represents the identity-provider token consumed by the storefront.
// The IdP mints these; the storefront only verifies and reads them.
type ProfileClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
