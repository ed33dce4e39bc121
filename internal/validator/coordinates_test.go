package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/avolkov/geotrack/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinates_ValidPairsRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"moscow", 55.7558, 37.6173},
		{"origin", 0, 0},
		{"north pole", 90, 0},
		{"south pole", -90, 0},
		{"date line east", 0, 180},
		{"date line west", 0, -180},
		{"all bounds", -90, -180},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lon, err := validator.Coordinates(tc.lat, tc.lon)
			require.NoError(t, err)
			assert.Equal(t, tc.lat, lat)
			assert.Equal(t, tc.lon, lon)
		})
	}
}

func TestCoordinates_StringInputs(t *testing.T) {
	lat, lon, err := validator.Coordinates("55.7558", "37.6173")
	require.NoError(t, err)
	assert.Equal(t, 55.7558, lat)
	assert.Equal(t, 37.6173, lon)
}

func TestCoordinates_JSONNumberInputs(t *testing.T) {
	lat, lon, err := validator.Coordinates(json.Number("41.0"), json.Number("-71.5"))
	require.NoError(t, err)
	assert.Equal(t, 41.0, lat)
	assert.Equal(t, -71.5, lon)
}

func TestCoordinates_OutOfRange(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon interface{}
		want     error
	}{
		{"latitude just above bound", 90.0000001, 0.0, validator.ErrLatitudeOutOfRange},
		{"latitude far above bound", 999.0, 0.0, validator.ErrLatitudeOutOfRange},
		{"latitude below bound", -90.0000001, 0.0, validator.ErrLatitudeOutOfRange},
		{"longitude just below bound", 0.0, -180.0000001, validator.ErrLongitudeOutOfRange},
		{"longitude above bound", 0.0, 180.5, validator.ErrLongitudeOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := validator.Coordinates(tc.lat, tc.lon)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCoordinates_InvalidFormat(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon interface{}
	}{
		{"non-numeric string", "abc", 37.6173},
		{"empty string", "", 37.6173},
		{"nil latitude", nil, 37.6173},
		{"boolean", true, 37.6173},
		{"object", map[string]interface{}{"v": 1.0}, 37.6173},
		{"NaN string", "NaN", 0.0},
		{"Inf string", "Inf", 0.0},
		{"negative Inf string", 0.0, "-Inf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := validator.Coordinates(tc.lat, tc.lon)
			assert.ErrorIs(t, err, validator.ErrInvalidFormat)
		})
	}
}
