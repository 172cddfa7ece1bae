package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/metrics"
	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/internal/timeclock/store"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/jwtx"
	"github.com/smatehq/timeclock/pkg/slogx"

	_ "github.com/smatehq/timeclock/api/timeclock" // Swagger docs
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	gatherer     prometheus.Gatherer

	store           store.Store
	IdentityService *service.IdentityService
	LocationService *service.LocationService
	LedgerService   *service.LedgerService
	ReportService   *service.ReportService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		gatherer:     gatherer,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerIdentity()
	r.registerLocations()
	r.registerClock()
	r.registerStaff()
	r.registerReports()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Timeclock Service API
//	@version		0.1.0
//	@description	Geofenced time-and-attendance service. Staff clock in and out at registered
//	@description	sites; managers see who is on shift and pull trailing-window hour reports.
//	@description
//	@description				Authentication is delegated to an external identity provider; every
//	@description				protected endpoint expects an RS256-signed bearer token verifiable
//	@description				against the provider's JWKS.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// identified builds the standard chain for endpoints acting as a local user:
// verify the token, resolve the local user, then rate limit by subject.
func (r *Router) identified(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/aud/exp)
		IdentityMiddleware(r.IdentityService),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerIdentity() {
	// GET /v1/me - lenient rate limit (profile reads)
	r.Mux.Handle("GET /v1/me", r.identified(&MeHandler{}, httpx.LenientLimit))

	// POST /v1/first-login - moderate rate limit. Runs on raw claims, not a
	// resolved user: the upsert itself is the resolution.
	firstLogin := &FirstLoginHandler{IdentityService: r.IdentityService}
	r.Mux.Handle("POST /v1/first-login",
		httpx.Chain(firstLogin,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerLocations() {
	// GET /v1/locations - public reference data, high limit by IP
	h := &LocationsHandler{LocationService: r.LocationService}
	r.Mux.Handle("GET /v1/locations",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerClock() {
	h := &ClockHandler{LedgerService: r.LedgerService}

	// POST /v1/clock/in and /v1/clock/out - moderate rate limit by user
	r.Mux.Handle("POST /v1/clock/in", r.identified(http.HandlerFunc(h.HandleClockIn), httpx.ModerateLimit))
	r.Mux.Handle("POST /v1/clock/out", r.identified(http.HandlerFunc(h.HandleClockOut), httpx.ModerateLimit))

	// GET /v1/events - lenient rate limit (read-only)
	events := &EventsHandler{LedgerService: r.LedgerService}
	r.Mux.Handle("GET /v1/events", r.identified(events, httpx.LenientLimit))
}

func (r *Router) registerStaff() {
	h := &StaffHandler{LedgerService: r.LedgerService}

	// GET /v1/staff/clocked-in - manager-only, moderate rate limit
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		IdentityMiddleware(r.IdentityService),
		httpx.RequireAnyRole("MANAGER"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/staff/clocked-in", secured)
}

func (r *Router) registerReports() {
	h := &ReportHandler{ReportService: r.ReportService}

	// GET /v1/report - manager-only, moderate rate limit
	secured := httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		IdentityMiddleware(r.IdentityService),
		httpx.RequireAnyRole("MANAGER"),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /v1/report", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics",
		httpx.Chain(metrics.Handler(r.gatherer),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
