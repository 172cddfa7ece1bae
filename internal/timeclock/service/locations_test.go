package service

import (
	"context"
	"testing"

	"github.com/smatehq/timeclock/internal/timeclock/domain"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultLocation(t *testing.T) {
	t.Parallel()

	svc := &LocationService{Store: newTestStore(t)}
	ctx := context.Background()

	require.NoError(t, svc.SeedDefault(ctx))

	locations, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	require.Equal(t, "Main Hospital", locations[0].Name)
	require.InDelta(t, 37.7749, locations[0].Lat, 1e-9)
	require.InDelta(t, -122.4194, locations[0].Lng, 1e-9)
	require.InDelta(t, 2000, locations[0].RadiusMeters, 1e-9)

	t.Run("idempotent across restarts", func(t *testing.T) {
		require.NoError(t, svc.SeedDefault(ctx))

		locations, err := svc.ListLocations(ctx)
		require.NoError(t, err)
		require.Len(t, locations, 1)
	})
}

func TestSeedDefaultSkipsNonEmptyRegistry(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	svc := &LocationService{Store: s}
	ctx := context.Background()

	seedSite(t, s, 500)
	require.NoError(t, svc.SeedDefault(ctx))

	locations, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 1)
}

func TestGetLocationByID(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	svc := &LocationService{Store: s}
	ctx := context.Background()

	site := seedSite(t, s, 500)

	got, err := svc.GetLocationByID(ctx, site.ID)
	require.NoError(t, err)
	require.Equal(t, site.Name, got.Name)

	_, err = svc.GetLocationByID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestListLocationsSurfacesTransientOnDeadContext(t *testing.T) {
	t.Parallel()

	svc := &LocationService{Store: newTestStore(t)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ListLocations(ctx)
	var domErr *domain.Error
	require.ErrorAs(t, err, &domErr)
	require.Equal(t, domain.KindTransient, domErr.Kind)
}
