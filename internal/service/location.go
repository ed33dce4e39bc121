package service

import (
	"context"
	"time"

	"github.com/avolkov/geotrack/internal/models"
	"github.com/rs/zerolog"
)

const saveLocationEndpoint = "/save_location"

type LocationRepository interface {
	Insert(ctx context.Context, latitude, longitude float64) (*models.Location, error)
	Count(ctx context.Context) (int64, error)
	LastByTimestamp(ctx context.Context) (*models.Location, error)
	FirstRecordTime(ctx context.Context) (*time.Time, error)
}

type ErrorRecorder interface {
	Record(ctx context.Context, message, endpoint string)
}

// Aggregate over all stored locations. LastLocation and FirstRecordDate
// are null when the store is empty.
type Statistics struct {
	TotalLocations  int64          `json:"total_locations"`
	LastLocation    *LocationPoint `json:"last_location"`
	FirstRecordDate *time.Time     `json:"first_record_date"`
}

type LocationPoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

type LocationService struct {
	repository LocationRepository
	sink       ErrorRecorder
	logger     zerolog.Logger
}

func NewLocationService(repo LocationRepository, sink ErrorRecorder, logger zerolog.Logger) *LocationService {
	return &LocationService{
		repository: repo,
		sink:       sink,
		logger:     logger,
	}
}

// Save persists an already-validated coordinate pair. Storage failures are
// routed to the error sink before being returned to the caller.
func (s *LocationService) Save(ctx context.Context, latitude, longitude float64) (*models.Location, error) {
	location, err := s.repository.Insert(ctx, latitude, longitude)
	if err != nil {
		s.logger.Error().
			Err(err).
			Float64("latitude", latitude).
			Float64("longitude", longitude).
			Msg("failed to save location")

		s.sink.Record(ctx, err.Error(), saveLocationEndpoint)
		return nil, err
	}

	s.logger.Info().
		Uint("location_id", location.ID).
		Float64("latitude", latitude).
		Float64("longitude", longitude).
		Msg("location saved")

	return location, nil
}

func (s *LocationService) Statistics(ctx context.Context) (*Statistics, error) {
	total, err := s.repository.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{TotalLocations: total}

	if total == 0 {
		return stats, nil
	}

	last, err := s.repository.LastByTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	if last != nil {
		stats.LastLocation = &LocationPoint{
			Latitude:  last.Latitude,
			Longitude: last.Longitude,
			Timestamp: last.Timestamp,
		}
	}

	first, err := s.repository.FirstRecordTime(ctx)
	if err != nil {
		return nil, err
	}
	stats.FirstRecordDate = first

	return stats, nil
}
