package http

import (
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

type EventsHandler struct {
	LedgerService *service.LedgerService
}

// ServeHTTP lists the acting user's clock events.
//
//	@Summary		List own clock events
//	@Description	Returns the authenticated user's clock events, newest first.
//	@Tags			Clock
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clocksdk.EventsResponse	"Clock events"
//	@Failure		401	{object}	clocksdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		503	{object}	clocksdk.ErrorResponse	"Store unavailable"
//	@Router			/v1/events [get].
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromCtx(ctx)
	if !ok {
		clocksdk.ErrUnauthorized.WriteError(w)
		return
	}

	events, err := h.LedgerService.ListForUser(ctx, user.ID)
	if err != nil {
		log.Warn("failed to list events", "user_id", user.ID, "err", err)
		writeDomainError(w, err)
		return
	}

	response := clocksdk.EventsResponse{
		Events: make([]clocksdk.ClockEventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, toClockEventResponse(e))
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
