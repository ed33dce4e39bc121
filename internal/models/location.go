package models

import (
	"time"
)

// Represents a persisted coordinate submission
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Latitude  float64   `gorm:"not null;index:idx_coordinates,priority:1" json:"latitude"`
	Longitude float64   `gorm:"not null;index:idx_coordinates,priority:2" json:"longitude"`
	Timestamp time.Time `gorm:"index:idx_timestamp" json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

func (Location) TableName() string {
	return "locations"
}
