package http

import (
	"encoding/json"
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

type ClockHandler struct {
	LedgerService *service.LedgerService
}

// HandleClockIn records an IN event.
//
//	@Summary		Clock in
//	@Description	Records a clock-in at the given location. The reported position must be within the
//	@Description	location's perimeter and the user must not already be clocked in.
//	@Tags			Clock
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.ClockRequest		true	"Location and reported position"
//	@Success		201		{object}	clocksdk.ClockEventResponse	"Recorded event"
//	@Failure		401		{object}	clocksdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		404		{object}	clocksdk.ErrorResponse		"Unknown location"
//	@Failure		409		{object}	clocksdk.ErrorResponse		"Already clocked in"
//	@Failure		422		{object}	clocksdk.ErrorResponse		"Outside the location perimeter"
//	@Router			/v1/clock/in [post].
func (h *ClockHandler) HandleClockIn(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.EventIn)
}

// HandleClockOut records an OUT event.
//
//	@Summary		Clock out
//	@Description	Records a clock-out, closing the user's open shift. The reported position must be
//	@Description	within the location's perimeter and the user must currently be clocked in.
//	@Tags			Clock
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clocksdk.ClockRequest		true	"Location and reported position"
//	@Success		201		{object}	clocksdk.ClockEventResponse	"Recorded event"
//	@Failure		401		{object}	clocksdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		404		{object}	clocksdk.ErrorResponse		"Unknown location"
//	@Failure		409		{object}	clocksdk.ErrorResponse		"Not clocked in"
//	@Failure		422		{object}	clocksdk.ErrorResponse		"Outside the location perimeter"
//	@Router			/v1/clock/out [post].
func (h *ClockHandler) HandleClockOut(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.EventOut)
}

func (h *ClockHandler) handle(w http.ResponseWriter, r *http.Request, kind domain.EventKind) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := userFromCtx(ctx)
	if !ok {
		clocksdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req clocksdk.ClockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		clocksdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.LocationID == "" {
		clocksdk.NewAPIError(http.StatusBadRequest, clocksdk.ErrorCodeInvalidRequest, "location_id is required").WriteError(w)
		return
	}

	var (
		event domain.ClockEvent
		err   error
	)
	switch kind {
	case domain.EventIn:
		event, err = h.LedgerService.ClockIn(ctx, user, req.LocationID, req.Lat, req.Lng, req.Note)
	default:
		event, err = h.LedgerService.ClockOut(ctx, user, req.LocationID, req.Lat, req.Lng, req.Note)
	}
	if err != nil {
		log.Warn("clock attempt rejected",
			"user_id", user.ID,
			"kind", string(kind),
			"err", err,
		)
		writeDomainError(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, toClockEventResponse(event))
}

func toClockEventResponse(e domain.ClockEvent) clocksdk.ClockEventResponse {
	response := clocksdk.ClockEventResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		LocationID: e.LocationID,
		Kind:       string(e.Kind),
		Lat:        e.Lat,
		Lng:        e.Lng,
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
	if e.Location != nil {
		response.LocationName = e.Location.Name
	}
	return response
}
