package http

import (
	"net/http"
	"strconv"

	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

type ReportHandler struct {
	ReportService *service.ReportService
}

// ServeHTTP returns the trailing-window hours report.
//
//	@Summary		Hours report
//	@Description	Per-staff worked hours over the trailing window plus aggregate stats.
//	@Description	Requires the MANAGER role.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			window_days	query		int							false	"Trailing window in days (default 7, max 365)"
//	@Success		200			{object}	clocksdk.ReportResponse		"Aggregated report"
//	@Failure		400			{object}	clocksdk.ErrorResponse		"Malformed window_days"
//	@Failure		401			{object}	clocksdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		403			{object}	clocksdk.ErrorResponse		"Caller is not a manager"
//	@Failure		503			{object}	clocksdk.ErrorResponse		"Store unavailable"
//	@Router			/v1/report [get].
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	windowDays := service.DefaultReportWindowDays
	if raw := r.URL.Query().Get("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > service.MaxReportWindowDays {
			clocksdk.NewAPIError(http.StatusBadRequest, clocksdk.ErrorCodeInvalidRequest,
				"window_days must be an integer between 1 and 365").WriteError(w)
			return
		}
		windowDays = parsed
	}

	report, err := h.ReportService.Report(ctx, windowDays)
	if err != nil {
		log.Warn("failed to build report", "window_days", windowDays, "err", err)
		writeDomainError(w, err)
		return
	}

	response := clocksdk.ReportResponse{
		WindowDays:     report.WindowDays,
		AvgHoursPerDay: report.AvgHoursPerDay,
		PeoplePerDay:   report.PeoplePerDay,
		PerStaff:       make([]clocksdk.StaffHoursResponse, 0, len(report.PerStaff)),
	}
	for _, sh := range report.PerStaff {
		response.PerStaff = append(response.PerStaff, clocksdk.StaffHoursResponse{
			UserID: sh.UserID,
			Name:   sh.Name,
			Hours:  sh.Hours,
		})
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, response)
}
