package clocksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TokenSource supplies the bearer token for authenticated requests. The
// token comes from the external identity provider; the SDK never sees
// credentials.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken returns a TokenSource that always yields the given token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// Client is a typed client for the timeclock service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens TokenSource
}

// NewClient creates a timeclock client. tokens may be nil when only the
// unauthenticated endpoints are needed.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		tokens: tokens,
	}
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/livez", false, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetReadiness checks if the service is ready to take traffic.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/readyz", false, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// ListLocations returns all geofenced sites.
func (c *Client) ListLocations(ctx context.Context) ([]LocationResponse, error) {
	var locations []LocationResponse
	if err := c.get(ctx, "/v1/locations", false, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Me returns the acting user's profile, auto-provisioning it on first
// contact.
func (c *Client) Me(ctx context.Context) (*UserResponse, error) {
	var user UserResponse
	if err := c.get(ctx, "/v1/me", true, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FirstLogin upserts the acting user's profile from the token claims,
// honoring the role claim. Call it once after each login; it is safe to
// repeat.
func (c *Client) FirstLogin(ctx context.Context) (*UserResponse, error) {
	var user UserResponse
	if err := c.post(ctx, "/v1/first-login", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ClockIn records an IN event at the given location.
func (c *Client) ClockIn(ctx context.Context, req ClockRequest) (*ClockEventResponse, error) {
	var event ClockEventResponse
	if err := c.post(ctx, "/v1/clock/in", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ClockOut records an OUT event, closing the open IN.
func (c *Client) ClockOut(ctx context.Context, req ClockRequest) (*ClockEventResponse, error) {
	var event ClockEventResponse
	if err := c.post(ctx, "/v1/clock/out", req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEvents returns the acting user's clock events, newest first.
func (c *Client) ListEvents(ctx context.Context) (*EventsResponse, error) {
	var events EventsResponse
	if err := c.get(ctx, "/v1/events", true, &events); err != nil {
		return nil, err
	}
	return &events, nil
}

// ListClockedIn returns the currently clocked-in staff. Requires the
// MANAGER role.
func (c *Client) ListClockedIn(ctx context.Context) (*ClockedInResponse, error) {
	var staff ClockedInResponse
	if err := c.get(ctx, "/v1/staff/clocked-in", true, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// Report returns the trailing-window hours report. Requires the MANAGER
// role. windowDays <= 0 uses the server default.
func (c *Client) Report(ctx context.Context, windowDays int) (*ReportResponse, error) {
	path := "/v1/report"
	if windowDays > 0 {
		path += "?window_days=" + url.QueryEscape(strconv.Itoa(windowDays))
	}

	var report ReportResponse
	if err := c.get(ctx, path, true, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) get(ctx context.Context, path string, authed bool, target any) error {
	return c.do(ctx, http.MethodGet, path, nil, authed, target)
}

func (c *Client) post(ctx context.Context, path string, body any, target any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	return c.do(ctx, http.MethodPost, path, reader, true, target)
}
