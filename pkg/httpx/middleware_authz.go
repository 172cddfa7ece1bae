package httpx

import (
	"net/http"
	"strings"
)

// RequireAnyRole lets the request through only when the resolved user's role
// (set in the context by the identity middleware) matches one of the given
// roles. Responds 403 otherwise.
func RequireAnyRole(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, role := range required {
		want[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := roleFromCtx(r.Context())
			if _, ok := want[have]; ok {
				next.ServeHTTP(w, r)
				return
			}

			writeBearerRoleError(w, required...)
		})
	}
}

// RFC 6750-style error response for insufficient privileges.
func writeBearerRoleError(w http.ResponseWriter, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "forbidden",
		"error_description": "insufficient role for this operation",
	})
}
