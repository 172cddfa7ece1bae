package http

import (
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

type FirstLoginHandler struct {
	IdentityService *service.IdentityService
}

// ServeHTTP upserts the acting user's profile from token claims.
//
//	@Summary		First login upsert
//	@Description	Synchronizes the local user with the identity provider's claims. This is the only
//	@Description	path that applies the role claim; clients call it once after each login.
//	@Tags			Identity
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clocksdk.UserResponse	"Upserted user profile"
//	@Failure		401	{object}	clocksdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		503	{object}	clocksdk.ErrorResponse	"Store unavailable"
//	@Router			/v1/first-login [post].
func (h *FirstLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := httpx.ClaimsFromCtx(ctx)
	if !ok {
		clocksdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.IdentityService.FirstLogin(ctx, claims)
	if err != nil {
		log.Warn("first login failed", "subject", claims.Subject, "err", err)
		writeDomainError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
