package kernel_test

import (
	"math"
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
		errMsg  []string
	}{
		{name: "hub", lat: -31.3833, lon: -57.9667},
		{name: "origin", lat: 0, lon: 0},
		{name: "bounds inclusive", lat: 90, lon: -180},
		{name: "other bounds inclusive", lat: -90, lon: 180},
		{name: "latitude too high", lat: 90.0001, lon: 0, wantErr: true, errMsg: []string{"lat"}},
		{name: "longitude too low", lat: 0, lon: -180.5, wantErr: true, errMsg: []string{"lon"}},
		{name: "both invalid", lat: -91, lon: 181, wantErr: true, errMsg: []string{"lat", "lon"}},
		{name: "NaN", lat: math.NaN(), lon: 0, wantErr: true, errMsg: []string{"lat"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tt.lat, tt.lon)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				for _, msg := range tt.errMsg {
					assert.Contains(t, err.Error(), msg)
				}
				assert.Equal(t, kernel.Location{}, loc)
				return
			}

			require.NoError(t, err)
			require.NoError(t, loc.Validate())
			assert.InDelta(t, tt.lat, loc.Lat(), 0)
			assert.InDelta(t, tt.lon, loc.Lon(), 0)
		})
	}
}

func TestMustNewLocation(t *testing.T) {
	assert.NotPanics(t, func() { kernel.MustNewLocation(10, 10) })
	assert.Panics(t, func() { kernel.MustNewLocation(100, 10) })
}

func TestLocation_Validate(t *testing.T) {
	var loc kernel.Location

	require.ErrorIs(t, loc.Validate(), kernel.ErrLocationIsNotConstructed)
}

func TestLocation_String(t *testing.T) {
	loc := kernel.MustNewLocation(-31.3833, -57.9667)

	assert.Equal(t, "Location(-31.383300,-57.966700)", loc.String())
}

func TestLocation_IsEqual(t *testing.T) {
	a := kernel.MustNewLocation(1.5, 2.5)
	b := kernel.MustNewLocation(1.5, 2.5)
	c := kernel.MustNewLocation(1.5, 2.6)

	t.Run("should compare coordinates", func(t *testing.T) {
		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)

		equal, err = a.IsEqual(c)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("should fail on zero value", func(t *testing.T) {
		_, err := a.IsEqual(kernel.Location{})

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestLocation_DistanceTo(t *testing.T) {
	t.Run("should be zero for the same point", func(t *testing.T) {
		hub := kernel.MustNewLocation(-31.3833, -57.9667)

		d, err := hub.DistanceTo(hub)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		a := kernel.MustNewLocation(0, 0)
		b := kernel.MustNewLocation(1, 0)

		d, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.InDelta(t, 111.19, d, 0.01)
	})

	t.Run("should be symmetric", func(t *testing.T) {
		a := kernel.MustNewLocation(-31.3833, -57.9667)
		b := kernel.MustNewLocation(-31.40, -57.95)

		ab, err := a.DistanceTo(b)
		require.NoError(t, err)
		ba, err := b.DistanceTo(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
		assert.Greater(t, ab, 0.0)
	})

	t.Run("antipodal points are half the circumference apart", func(t *testing.T) {
		a := kernel.MustNewLocation(0, 0)
		b := kernel.MustNewLocation(0, 180)

		d, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.InDelta(t, math.Pi*6371.0, d, 0.001)
	})

	t.Run("should fail on zero value", func(t *testing.T) {
		a := kernel.MustNewLocation(0, 0)

		_, err := a.DistanceTo(kernel.Location{})

		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}
