package repository

import (
	"context"
	"time"

	"github.com/avolkov/geotrack/internal/models"
	"github.com/avolkov/geotrack/internal/storage"
	"gorm.io/gorm"
)

type LocationRepository struct {
	db *storage.Postgres
}

func NewLocationRepository(db *storage.Postgres) *LocationRepository {
	return &LocationRepository{db: db}
}

// Inserts a validated coordinate pair with a server-assigned timestamp
func (r *LocationRepository) Insert(ctx context.Context, latitude, longitude float64) (*models.Location, error) {
	location := &models.Location{
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: time.Now().UTC(),
	}

	if err := r.db.DB.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}

	return location, nil
}

func (r *LocationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.Location{}).
		Count(&count).Error

	return count, err
}

// Most recent record by timestamp; ties broken by highest id
func (r *LocationRepository) LastByTimestamp(ctx context.Context) (*models.Location, error) {
	var location models.Location
	err := r.db.DB.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		First(&location).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}

	return &location, err
}

func (r *LocationRepository) FirstRecordTime(ctx context.Context) (*time.Time, error) {
	var location models.Location
	err := r.db.DB.WithContext(ctx).
		Order("timestamp ASC").
		First(&location).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &location.Timestamp, nil
}
