package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/smatehq/timeclock/internal/timeclock/store"
	"github.com/smatehq/timeclock/pkg/idx"
	"github.com/smatehq/timeclock/pkg/slogx"
)

// LocationService serves the read-only registry of geofenced sites.
type LocationService struct {
	Store store.Store
}

// GetLocationByID returns a site by id.
func (s *LocationService) GetLocationByID(ctx context.Context, id string) (domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	location, err := s.Store.Locations().GetLocationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Location{}, domain.ErrLocationNotFound
		}
		return domain.Location{}, domain.TransientError("location lookup failed")
	}
	return location, nil
}

// ListLocations returns all sites ordered by name.
func (s *LocationService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	locations, err := s.Store.Locations().ListLocations(ctx)
	if err != nil {
		return nil, domain.TransientError("location listing failed")
	}
	return locations, nil
}

// SeedDefault inserts the default site when the registry is empty, so a
// fresh deployment is immediately usable. Keyed on emptiness rather than
// name, restarts are no-ops.
func (s *LocationService) SeedDefault(ctx context.Context) error {
	log := slogx.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	empty, err := s.Store.Locations().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	seed := domain.Location{
		ID:           idx.New().String(),
		Name:         "Main Hospital",
		Lat:          37.7749,
		Lng:          -122.4194,
		RadiusMeters: 2000,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Store.Locations().CreateLocation(ctx, seed); err != nil {
		return err
	}

	log.Info("seeded default location",
		slog.String("location_id", seed.ID),
		slog.String("name", seed.Name),
	)
	return nil
}
