package http

import (
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
)

type MeHandler struct{}

// ServeHTTP returns the acting user's profile.
//
//	@Summary		Get own profile
//	@Description	Returns the profile of the authenticated user. Auto-provisions a CARE user on first contact.
//	@Tags			Identity
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clocksdk.UserResponse	"Acting user profile"
//	@Failure		401	{object}	clocksdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromCtx(r.Context())
	if !ok {
		clocksdk.ErrUnauthorized.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u domain.User) clocksdk.UserResponse {
	return clocksdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
