package service

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smatehq/timeclock/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestKeyRefreshServiceLifecycle(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	jwks := jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewRSAJWK("rotating-1", "sig", "RS256", &key.PublicKey)}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwks)
	}))
	t.Cleanup(srv.Close)

	keys := jwtx.NewKeySet()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewKeyRefreshService(jwtx.NewJWKSClient(srv.URL), keys, logger, time.Hour)
	svc.Start()

	// The startup fetch runs before the first tick, so the keys should be
	// ready almost immediately.
	require.Eventually(t, keys.IsReady, 2*time.Second, 10*time.Millisecond)

	svc.Stop()

	_, err = keys.Get("rotating-1")
	require.NoError(t, err)
}

func TestKeyRefreshServiceDefaultsInterval(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewKeyRefreshService(jwtx.NewJWKSClient("http://localhost:0"), jwtx.NewKeySet(), logger, 0)
	require.Equal(t, 15*time.Minute, svc.Interval)
}
