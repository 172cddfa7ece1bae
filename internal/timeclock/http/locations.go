package http

import (
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/service"
	"github.com/smatehq/timeclock/pkg/clocksdk"
	"github.com/smatehq/timeclock/pkg/httpx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

type LocationsHandler struct {
	LocationService *service.LocationService
}

// ServeHTTP lists all geofenced sites.
//
//	@Summary		List locations
//	@Description	Returns all geofenced sites staff can clock at, ordered by name.
//	@Tags			Locations
//	@Produce		json
//	@Success		200	{array}		clocksdk.LocationResponse	"Geofenced sites"
//	@Failure		503	{object}	clocksdk.ErrorResponse		"Store unavailable"
//	@Router			/v1/locations [get].
func (h *LocationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	locations, err := h.LocationService.ListLocations(ctx)
	if err != nil {
		log.Warn("failed to list locations", "err", err)
		writeDomainError(w, err)
		return
	}

	response := make([]clocksdk.LocationResponse, 0, len(locations))
	for _, l := range locations {
		response = append(response, toLocationResponse(l))
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

func toLocationResponse(l domain.Location) clocksdk.LocationResponse {
	return clocksdk.LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		Lat:          l.Lat,
		Lng:          l.Lng,
		RadiusMeters: l.RadiusMeters,
	}
}
