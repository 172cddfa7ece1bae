package http

import (
	"context"
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

type ctxKey string

// ctxKeyUser holds the resolved local *domain.User for the request.
const ctxKeyUser ctxKey = "user"

// IdentityMiddleware resolves the verified claims (placed in the context by
// the authn middleware) to a local user, auto-provisioning on first contact,
// and exposes the user's role to the authz middleware. Runs after authn and
// before any handler that needs an acting user.
func IdentityMiddleware(identity *service.IdentityService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, ok := httpx.ClaimsFromCtx(ctx)
			if !ok {
				clocksdk.ErrUnauthorized.WriteError(w)
				return
			}

			user, err := identity.Resolve(ctx, claims)
			if err != nil {
				slogx.FromContext(ctx).Warn("identity resolution failed", "err", err)
				writeDomainError(w, err)
				return
			}

			ctx = context.WithValue(ctx, ctxKeyUser, &user)
			ctx = context.WithValue(ctx, httpx.CtxKeyRole, string(user.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userFromCtx returns the acting user resolved by IdentityMiddleware.
func userFromCtx(ctx context.Context) (domain.User, bool) {
	if u, ok := ctx.Value(ctxKeyUser).(*domain.User); ok && u != nil {
		return *u, true
	}
	return domain.User{}, false
}
