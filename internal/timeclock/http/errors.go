package http

import (
	"errors"
	"net/http"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/pkg/clocksdk"
)

// writeDomainError maps a domain failure onto the wire error taxonomy.
// Unknown errors deliberately collapse into transient so internals never
// leak to clients.
func writeDomainError(w http.ResponseWriter, err error) {
	var domErr *domain.Error
	if !errors.As(err, &domErr) {
		clocksdk.ErrTransient.WriteError(w)
		return
	}

	switch domErr.Kind {
	case domain.KindUnauthorized:
		clocksdk.ErrUnauthorized.WriteError(w)
	case domain.KindForbidden:
		clocksdk.ErrForbidden.WriteError(w)
	case domain.KindNotFound:
		clocksdk.NewAPIError(http.StatusNotFound, clocksdk.ErrorCodeNotFound, domErr.Message).WriteError(w)
	case domain.KindOutsidePerimeter:
		clocksdk.ErrOutsidePerimeter.WriteError(w)
	case domain.KindInvalidState:
		clocksdk.NewAPIError(http.StatusConflict, clocksdk.ErrorCodeInvalidState, domErr.Message).WriteError(w)
	default:
		clocksdk.ErrTransient.WriteError(w)
	}
}
