package http

import (
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

type StaffHandler struct {
	LedgerService *service.LedgerService
}

// ServeHTTP lists currently clocked-in staff.
//
//	@Summary		List clocked-in staff
//	@Description	Returns every user whose latest clock event is an open IN. Requires the MANAGER role.
//	@Tags			Staff
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	clocksdk.ClockedInResponse	"Currently clocked-in staff"
//	@Failure		401	{object}	clocksdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403	{object}	clocksdk.ErrorResponse		"Caller is not a manager"
//	@Failure		503	{object}	clocksdk.ErrorResponse		"Store unavailable"
//	@Router			/v1/staff/clocked-in [get].
func (h *StaffHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	open, err := h.LedgerService.ListCurrentlyClockedIn(ctx)
	if err != nil {
		log.Warn("failed to list clocked-in staff", "err", err)
		writeDomainError(w, err)
		return
	}

	response := clocksdk.ClockedInResponse{
		Staff: make([]clocksdk.ClockedInStaff, 0, len(open)),
	}
	for _, e := range open {
		staff := clocksdk.ClockedInStaff{
			UserID:     e.UserID,
			LocationID: e.LocationID,
			Since:      e.CreatedAt,
		}
		if e.User != nil {
			staff.Name = e.User.Name
		}
		if e.Location != nil {
			staff.LocationName = e.Location.Name
		}
		response.Staff = append(response.Staff, staff)
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
