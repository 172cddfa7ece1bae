package jwtx_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smatehq/timeclock/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://idp.test/"

func newSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwtx.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func baseClaims(sub string) jwtx.Claims {
	now := time.Now().UTC()
	return jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   sub,
			Audience:  jwt.ClaimStrings{"timeclock"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
		Email: "staff@example.com",
		Name:  "Staff Member",
		Role:  "MANAGER",
	}
}

func TestRS256VerifierRoundTrip(t *testing.T) {
	t.Parallel()

	key := newSigningKey(t)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddJWK(jwtx.NewRSAJWK("key-1", "sig", "RS256", &key.PublicKey)))

	v := jwtx.NewVerifierRS256(keys, testIssuer, []string{"timeclock"})

	signed := signToken(t, key, "key-1", baseClaims("auth0|abc123"))

	claims, err := v.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "auth0|abc123", claims.Subject)
	require.Equal(t, "staff@example.com", claims.Email)
	require.Equal(t, "MANAGER", claims.Role)
	require.Equal(t, "Staff Member", claims.DisplayName())
}

func TestRS256VerifierRejections(t *testing.T) {
	t.Parallel()

	key := newSigningKey(t)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddJWK(jwtx.NewRSAJWK("key-1", "sig", "RS256", &key.PublicKey)))

	v := jwtx.NewVerifierRS256(keys, testIssuer, []string{"timeclock"})

	t.Run("unknown kid", func(t *testing.T) {
		signed := signToken(t, key, "key-2", baseClaims("auth0|abc"))
		_, err := v.Verify(signed)
		require.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := baseClaims("auth0|abc")
		claims.Issuer = "https://evil.test/"
		signed := signToken(t, key, "key-1", claims)
		_, err := v.Verify(signed)
		require.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := baseClaims("auth0|abc")
		claims.Audience = jwt.ClaimStrings{"other-api"}
		signed := signToken(t, key, "key-1", claims)
		_, err := v.Verify(signed)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("expired", func(t *testing.T) {
		claims := baseClaims("auth0|abc")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		signed := signToken(t, key, "key-1", claims)
		_, err := v.Verify(signed)
		require.Error(t, err)
	})

	t.Run("signed by a different key", func(t *testing.T) {
		other := newSigningKey(t)
		signed := signToken(t, other, "key-1", baseClaims("auth0|abc"))
		_, err := v.Verify(signed)
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.Error(t, err)
	})
}

func TestDisplayNameFallsBackToNickname(t *testing.T) {
	t.Parallel()

	c := jwtx.Claims{Nickname: "nick"}
	require.Equal(t, "nick", c.DisplayName())
}

func TestJWKSClientFetchInto(t *testing.T) {
	t.Parallel()

	key := newSigningKey(t)
	jwks := jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewRSAJWK("remote-1", "sig", "RS256", &key.PublicKey)}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/.well-known/jwks.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(srv.Close)

	keys := jwtx.NewKeySet()
	require.False(t, keys.IsReady())

	client := jwtx.NewJWKSClient(srv.URL)
	require.NoError(t, client.FetchInto(t.Context(), keys))
	require.True(t, keys.IsReady())

	_, err := keys.Get("remote-1")
	require.NoError(t, err)

	_, err = keys.Get("missing")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}
