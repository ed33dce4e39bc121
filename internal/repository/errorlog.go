package repository

import (
	"context"

	"github.com/avolkov/geotrack/internal/models"
	"github.com/avolkov/geotrack/internal/storage"
)

// Column is VARCHAR(500); anything longer is cut before insert
const maxErrorMessageLen = 500

type ErrorLogRepository struct {
	db *storage.Postgres
}

func NewErrorLogRepository(db *storage.Postgres) *ErrorLogRepository {
	return &ErrorLogRepository{db: db}
}

func (r *ErrorLogRepository) Create(ctx context.Context, message, endpoint string) error {
	if runes := []rune(message); len(runes) > maxErrorMessageLen {
		message = string(runes[:maxErrorMessageLen])
	}

	entry := &models.ErrorLog{
		ErrorMessage: message,
		Endpoint:     endpoint,
	}

	return r.db.DB.WithContext(ctx).Create(entry).Error
}
