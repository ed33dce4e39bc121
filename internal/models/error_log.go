package models

import (
	"time"
)

// Append-only operational error record. Rows are written best-effort on
// storage failures and never updated or deleted by the service.
type ErrorLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ErrorMessage string    `gorm:"size:500" json:"error_message"`
	Endpoint     string    `json:"endpoint"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ErrorLog) TableName() string {
	return "error_logs"
}
