package httpx

import (
	"context"

	"github.com/smatehq/timeclock/pkg/jwtx"
)

type ctxKey string

const (
	// CtxKeySubject is the verified external subject from the bearer token.
	CtxKeySubject ctxKey = "subject"

	// CtxKeyClaims holds the full jwtx.Claims for downstream handlers.
	CtxKeyClaims ctxKey = "claims"

	// CtxKeyRole is the resolved local user's role, set by the identity
	// resolution middleware after the user record is loaded.
	CtxKeyRole ctxKey = "role"
)

func SubjectFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySubject).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromCtx returns the verified claims placed in the context by the
// authn middleware. The second return is false when no claims are present.
func ClaimsFromCtx(ctx context.Context) (jwtx.Claims, bool) {
	v, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return v, ok
}

func roleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}
