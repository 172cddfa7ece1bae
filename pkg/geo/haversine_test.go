package geo_test

import (
	"testing"

	"github.com/smatehq/timeclock/pkg/geo"
	"github.com/stretchr/testify/require"
)

func TestDistanceMeters(t *testing.T) {
	t.Parallel()

	t.Run("zero distance for identical points", func(t *testing.T) {
		require.Zero(t, geo.DistanceMeters(37.7749, -122.4194, 37.7749, -122.4194))
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := geo.DistanceMeters(37.7749, -122.4194, 37.7849, -122.4094)
		ba := geo.DistanceMeters(37.7849, -122.4094, 37.7749, -122.4194)
		require.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("one degree of latitude is about 111km", func(t *testing.T) {
		d := geo.DistanceMeters(0, 0, 1, 0)
		require.InDelta(t, 111195, d, 50)
	})

	t.Run("sf to la", func(t *testing.T) {
		// SF city hall to LA city hall, roughly 559km.
		d := geo.DistanceMeters(37.7793, -122.4193, 34.0537, -118.2427)
		require.InDelta(t, 559000, d, 2000)
	})

	t.Run("short distances stay stable", func(t *testing.T) {
		// ~0.009 degrees of latitude is about 1km; geofence comparisons
		// at this scale must not wobble.
		d := geo.DistanceMeters(37.7749, -122.4194, 37.78389, -122.4194)
		require.InDelta(t, 1000, d, 5)
		require.GreaterOrEqual(t, d, 0.0)
	})
}
