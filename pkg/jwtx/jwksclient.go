package jwtx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// JWKSClient fetches the identity provider's published key set from the
// standard /.well-known/jwks.json endpoint.
type JWKSClient struct {
	IssuerBaseURL string
	HTTPClient    *http.Client
}

// NewJWKSClient creates a client for the given issuer base URL.
func NewJWKSClient(issuerBaseURL string) *JWKSClient {
	return &JWKSClient{
		IssuerBaseURL: strings.TrimSuffix(issuerBaseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves the current JWKS from the provider.
func (c *JWKSClient) Fetch(ctx context.Context) (JWKS, error) {
	url := c.IssuerBaseURL + "/.well-known/jwks.json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: build jwks request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwtx: jwks endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: read jwks body: %w", err)
	}

	var jwks JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		return JWKS{}, fmt.Errorf("jwtx: decode jwks: %w", err)
	}

	return jwks, nil
}

// FetchInto fetches the JWKS and swaps it into the KeySet atomically.
func (c *JWKSClient) FetchInto(ctx context.Context, keys *KeySet) error {
	jwks, err := c.Fetch(ctx)
	if err != nil {
		return err
	}
	return keys.ResetFromJWKS(jwks)
}
