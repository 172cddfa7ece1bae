package http_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	timeclockhttp "github.com/smatehq/timeclock/internal/timeclock/http"
	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/internal/timeclock/store/drivers/sqlite"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

// stubVerifier maps opaque test tokens to verified claims, standing in for
// the RS256 verifier so handler tests don't need signed tokens.
type stubVerifier map[string]jwtx.Claims

func (v stubVerifier) Verify(token string) (jwtx.Claims, error) {
	claims, ok := v[token]
	if !ok {
		return jwtx.Claims{}, errors.New("unknown token")
	}
	return claims, nil
}

type testEnv struct {
	router   *timeclockhttp.Router
	store    *sqlite.Store
	verifier stubVerifier
	keys     *jwtx.KeySet
	siteID   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := sqlite.DSN(filepath.Join(t.TempDir(), "timeclock.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	verifier := stubVerifier{}
	keys := jwtx.NewKeySet()

	identity := &service.IdentityService{Store: st}
	locations := &service.LocationService{Store: st}
	ledger := &service.LedgerService{Store: st}
	reports := &service.ReportService{Store: st}

	require.NoError(t, locations.SeedDefault(t.Context()))
	sites, err := locations.ListLocations(t.Context())
	require.NoError(t, err)
	require.Len(t, sites, 1)

	router := timeclockhttp.NewRouter(keys, verifier, "test", st, prometheus.NewRegistry(), logger)
	router.IdentityService = identity
	router.LocationService = locations
	router.LedgerService = ledger
	router.ReportService = reports
	router.ApplyRoutes()

	return &testEnv{
		router:   router,
		store:    st,
		verifier: verifier,
		keys:     keys,
		siteID:   sites[0].ID,
	}
}

func (e *testEnv) token(subject, role string) string {
	token := "token-" + subject
	claims := jwtx.Claims{Email: subject + "@example.com", Name: "User " + subject, Role: role}
	claims.Subject = subject
	e.verifier[token] = claims
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[clocksdk.ErrorResponse](t, rec).Error
}

const (
	siteLat = 37.7749
	siteLng = -122.4194
)

func clockBody(locationID string) clocksdk.ClockRequest {
	return clocksdk.ClockRequest{LocationID: locationID, Lat: siteLat, Lng: siteLng}
}

func TestLivez(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	health := decodeBody[clocksdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "test", health.Version)
}

func TestReadyzTracksKeyReadiness(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	health := decodeBody[clocksdk.HealthResponse](t, rec)
	require.Equal(t, "degraded", health.Status)
	require.Contains(t, health.Checks.Verifier, "no keys")

	// Load a key; the service should go green.
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	require.NoError(t, env.keys.AddJWK(jwtx.NewRSAJWK("readyz-1", "sig", "RS256", &key.PublicKey)))

	rec = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListLocationsIsPublic(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/v1/locations", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	locations := decodeBody[[]clocksdk.LocationResponse](t, rec)
	require.Len(t, locations, 1)
	require.Equal(t, "Main Hospital", locations[0].Name)
	require.InDelta(t, 2000, locations[0].RadiusMeters, 1e-9)
}

func TestMeRequiresToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/me", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeAutoProvisions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token("auth0|fresh", "")

	rec := env.do(t, http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	user := decodeBody[clocksdk.UserResponse](t, rec)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "CARE", user.Role)
	require.Equal(t, "auth0|fresh@example.com", user.Email)
}

func TestFirstLoginAppliesRoleClaim(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token("auth0|boss", "MANAGER")

	rec := env.do(t, http.MethodPost, "/v1/first-login", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	user := decodeBody[clocksdk.UserResponse](t, rec)
	require.Equal(t, "MANAGER", user.Role)
}

func TestClockInOutFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token("auth0|shift", "")

	rec := env.do(t, http.MethodPost, "/v1/clock/in", token, clockBody(env.siteID))
	require.Equal(t, http.StatusCreated, rec.Code)
	event := decodeBody[clocksdk.ClockEventResponse](t, rec)
	require.Equal(t, "IN", event.Kind)
	require.NotEmpty(t, event.ID)

	t.Run("double clock in conflicts", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/clock/in", token, clockBody(env.siteID))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, clocksdk.ErrorCodeInvalidState, errorCode(t, rec))
	})

	rec = env.do(t, http.MethodPost, "/v1/clock/out", token, clockBody(env.siteID))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "OUT", decodeBody[clocksdk.ClockEventResponse](t, rec).Kind)

	t.Run("events list shows both", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/events", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		events := decodeBody[clocksdk.EventsResponse](t, rec)
		require.Len(t, events.Events, 2)
		require.Equal(t, "OUT", events.Events[0].Kind)
		require.Equal(t, "Main Hospital", events.Events[0].LocationName)
	})
}

func TestClockInRejections(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token := env.token("auth0|rejected", "")

	t.Run("unknown location", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/clock/in", token, clockBody("no-such-site"))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, clocksdk.ErrorCodeNotFound, errorCode(t, rec))
	})

	t.Run("outside perimeter", func(t *testing.T) {
		body := clocksdk.ClockRequest{LocationID: env.siteID, Lat: siteLat + 1, Lng: siteLng}
		rec := env.do(t, http.MethodPost, "/v1/clock/in", token, body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Equal(t, clocksdk.ErrorCodeOutsidePerimeter, errorCode(t, rec))
	})

	t.Run("missing location id", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/clock/in", token, clocksdk.ClockRequest{Lat: siteLat, Lng: siteLng})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, clocksdk.ErrorCodeInvalidRequest, errorCode(t, rec))
	})

	t.Run("clock out without open shift", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/clock/out", token, clockBody(env.siteID))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, clocksdk.ErrorCodeInvalidState, errorCode(t, rec))
	})
}

func TestClockedInRequiresManager(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	care := env.token("auth0|carer", "")
	manager := env.token("auth0|manager", "MANAGER")

	// The manager role only lands through first-login.
	rec := env.do(t, http.MethodPost, "/v1/first-login", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/staff/clocked-in", care, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/clock/in", care, clockBody(env.siteID))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/staff/clocked-in", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	staff := decodeBody[clocksdk.ClockedInResponse](t, rec)
	require.Len(t, staff.Staff, 1)
	require.Equal(t, "User auth0|carer", staff.Staff[0].Name)
	require.Equal(t, "Main Hospital", staff.Staff[0].LocationName)
}

func TestReportEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	care := env.token("auth0|worker", "")
	manager := env.token("auth0|chief", "MANAGER")

	rec := env.do(t, http.MethodPost, "/v1/first-login", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("forbidden for care staff", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/report", care, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("rejects malformed window", func(t *testing.T) {
		for _, q := range []string{"abc", "0", "-1", "400"} {
			rec := env.do(t, http.MethodGet, "/v1/report?window_days="+q, manager, nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("returns report", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/v1/report?window_days=14", manager, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		report := decodeBody[clocksdk.ReportResponse](t, rec)
		require.Equal(t, 14, report.WindowDays)
	})
}
