// Package validator checks raw coordinate input before anything touches
// the database. The store performs no range checks of its own.
package validator

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var (
	ErrInvalidFormat       = errors.New("coordinates must be numeric")
	ErrLatitudeOutOfRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")
)

// Coordinates validates a raw latitude/longitude pair. Inputs may arrive
// as JSON numbers or strings; anything that does not parse to a finite
// float is rejected as invalid format. Bounds are inclusive.
func Coordinates(latitude, longitude interface{}) (float64, float64, error) {
	lat, err := parseCoordinate(latitude)
	if err != nil {
		return 0, 0, err
	}

	lon, err := parseCoordinate(longitude)
	if err != nil {
		return 0, 0, err
	}

	if lat < MinLatitude || lat > MaxLatitude {
		return 0, 0, ErrLatitudeOutOfRange
	}

	if lon < MinLongitude || lon > MaxLongitude {
		return 0, 0, ErrLongitudeOutOfRange
	}

	return lat, lon, nil
}

func parseCoordinate(value interface{}) (float64, error) {
	var f float64

	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, ErrInvalidFormat
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, ErrInvalidFormat
		}
		f = parsed
	default:
		return 0, ErrInvalidFormat
	}

	// strconv accepts "NaN" and "Inf"; neither is a coordinate
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidFormat
	}

	return f, nil
}
