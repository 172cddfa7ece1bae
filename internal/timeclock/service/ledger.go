package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/metrics"
	"github.com/smatehq/timeclock/internal/timeclock/store"
	"github.com/smatehq/timeclock/pkg/geo"
	"github.com/smatehq/timeclock/pkg/idx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

// storeTimeout bounds every ledger database round trip so a wedged store
// surfaces as a retryable failure instead of hanging the request.
const storeTimeout = 5 * time.Second

// LedgerService owns the append-only clock event sequence. Every write goes
// through a single transaction that re-checks state before appending, so two
// racing requests for the same user cannot both win.
type LedgerService struct {
	Store   store.Store
	Metrics metrics.Recorder
}

// ClockIn records an IN event for the user at the given location, provided
// the reported coordinate is inside the location's perimeter and the user's
// last event is not already an open IN.
func (s *LedgerService) ClockIn(ctx context.Context, user domain.User, locationID string, lat, lng float64, note *string) (domain.ClockEvent, error) {
	return s.append(ctx, user, locationID, domain.EventIn, lat, lng, note)
}

// ClockOut records an OUT event, closing the user's open IN. Rejected when
// nothing is open. The perimeter check applies on the way out too; staff
// cannot close a shift from home.
func (s *LedgerService) ClockOut(ctx context.Context, user domain.User, locationID string, lat, lng float64, note *string) (domain.ClockEvent, error) {
	return s.append(ctx, user, locationID, domain.EventOut, lat, lng, note)
}

func (s *LedgerService) append(ctx context.Context, user domain.User, locationID string, kind domain.EventKind, lat, lng float64, note *string) (domain.ClockEvent, error) {
	log := slogx.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var event domain.ClockEvent
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. The location must exist.
		location, err := tx.Locations().GetLocationByID(ctx, locationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.ErrLocationNotFound
			}
			return err
		}

		// 2. The reported coordinate must be inside the perimeter.
		// Exactly on the boundary is inside; strictly beyond is not.
		distance := geo.DistanceMeters(lat, lng, location.Lat, location.Lng)
		s.recorder().RecordGeofenceDistance(distance)
		if distance > location.RadiusMeters {
			log.Warn("clock attempt outside perimeter",
				slog.String("user_id", user.ID),
				slog.String("location_id", locationID),
				slog.Float64("distance_m", distance),
				slog.Float64("radius_m", location.RadiusMeters),
			)
			return domain.ErrOutsidePerimeter
		}

		// 3. Kind must strictly alternate. Reading the last event inside
		// the write transaction means a concurrent winner's append is
		// visible here, and the loser fails this check.
		last, err := tx.ClockEvents().GetLastEventForUser(ctx, user.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			if kind == domain.EventOut {
				return domain.ErrNotClockedIn
			}
		case err != nil:
			return err
		case last.Kind == kind && kind == domain.EventIn:
			return domain.ErrAlreadyClockedIn
		case last.Kind == kind:
			return domain.ErrNotClockedIn
		}

		// 4. Server-assigned timestamp, forced monotonic per user so the
		// ledger order never depends on wall clock ties or regressions.
		now := time.Now().UTC()
		if err == nil && !now.After(last.CreatedAt) {
			now = last.CreatedAt.Add(time.Millisecond)
		}

		event = domain.ClockEvent{
			ID:         idx.New().String(),
			UserID:     user.ID,
			LocationID: locationID,
			Kind:       kind,
			Lat:        lat,
			Lng:        lng,
			Note:       note,
			CreatedAt:  now,
		}
		if err := tx.ClockEvents().CreateClockEvent(ctx, event); err != nil {
			return err
		}

		// Callers get the event with its relations attached, the same
		// shape the read paths return.
		event.User = &user
		event.Location = &location
		return nil
	})
	if err != nil {
		var domErr *domain.Error
		if errors.As(err, &domErr) {
			s.recorder().RecordClockRejected(string(domErr.Kind))
			return domain.ClockEvent{}, err
		}
		log.Error("failed to append clock event",
			slog.String("user_id", user.ID),
			slog.String("kind", string(kind)),
			slog.Any("error", err),
		)
		s.recorder().RecordClockRejected(string(domain.KindTransient))
		return domain.ClockEvent{}, domain.TransientError("clock event write failed")
	}

	log.Info("clock event recorded",
		slog.String("event_id", event.ID),
		slog.String("user_id", user.ID),
		slog.String("kind", string(kind)),
	)
	s.recorder().RecordClockEvent(string(kind))

	return event, nil
}

// ListForUser returns the user's own events, newest first, with the
// location attached.
func (s *LedgerService) ListForUser(ctx context.Context, userID string) ([]domain.ClockEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	events, err := s.Store.ClockEvents().ListEventsForUser(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list events", slog.Any("error", err))
		return nil, domain.TransientError("event listing failed")
	}
	return events, nil
}

// ListCurrentlyClockedIn returns each user whose latest event is an open IN,
// using a single aggregate query rather than walking every user's ledger.
func (s *LedgerService) ListCurrentlyClockedIn(ctx context.Context) ([]domain.ClockEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	latest, err := s.Store.ClockEvents().ListLastEventPerUser(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list latest events", slog.Any("error", err))
		return nil, domain.TransientError("clocked-in listing failed")
	}

	open := make([]domain.ClockEvent, 0, len(latest))
	for _, e := range latest {
		if e.Kind == domain.EventIn {
			open = append(open, e)
		}
	}
	return open, nil
}

func (s *LedgerService) recorder() metrics.Recorder {
	if s.Metrics == nil {
		return metrics.Nop{}
	}
	return s.Metrics
}
