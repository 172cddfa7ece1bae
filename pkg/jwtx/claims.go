// Package jwtx verifies access tokens issued by the external identity
// provider. The service never mints or signs tokens itself; it only checks
// RS256 signatures against the provider's published JWKS and hands the
// verified claims to the identity resolver.
package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified identity assertion this service consumes. Only
// the subject is guaranteed; everything else is best-effort profile data.
type Claims struct {
	jwt.RegisteredClaims

	// Email from the identity provider, may be absent for opaque subjects.
	Email string `json:"email,omitempty"`

	// Name is the display name, Nickname the short handle. Providers fill
	// in one, the other, or neither.
	Name     string `json:"name,omitempty"`
	Nickname string `json:"nickname,omitempty"`

	// Role is the namespaced custom role claim set by the provider's login
	// action. Only honored on the explicit first-login path.
	Role string `json:"https://smate/role,omitempty"`
}

// DisplayName picks the best available human-readable name from the claims.
func (c *Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Nickname
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil // nothing to enforce
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
