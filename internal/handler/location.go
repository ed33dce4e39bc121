package handler

import (
	"context"
	"net/http"

	"github.com/avolkov/geotrack/internal/metrics"
	"github.com/avolkov/geotrack/internal/models"
	"github.com/avolkov/geotrack/internal/service"
	"github.com/avolkov/geotrack/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type LocationService interface {
	Save(ctx context.Context, latitude, longitude float64) (*models.Location, error)
	Statistics(ctx context.Context) (*service.Statistics, error)
}

type LocationHandler struct {
	service LocationService
	logger  zerolog.Logger
}

func NewLocationHandler(service LocationService, logger zerolog.Logger) *LocationHandler {
	return &LocationHandler{
		service: service,
		logger:  logger,
	}
}

// Handles POST /save_location. Content-type and rate-limit gates run as
// route middleware before this; client input errors are answered directly
// and never reach the error log.
func (h *LocationHandler) Save(c *gin.Context) {
	var req struct {
		Latitude  interface{} `json:"latitude"`
		Longitude interface{} `json:"longitude"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "missing required fields: latitude and longitude",
		})
		return
	}

	latitude, longitude, err := validator.Coordinates(req.Latitude, req.Longitude)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	location, err := h.service.Save(ctx, latitude, longitude)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error while saving location",
		})
		return
	}

	metrics.LocationsSaved.Inc()

	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"message":     "Location saved successfully",
		"location_id": location.ID,
		"latitude":    latitude,
		"longitude":   longitude,
	})
}

// Handles GET /statistics
func (h *LocationHandler) Statistics(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.service.Statistics(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to retrieve statistics")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to retrieve statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "OK",
		"statistics": stats,
	})
}
