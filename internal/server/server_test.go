package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkov/geotrack/internal/config"
	"github.com/avolkov/geotrack/internal/handler"
	"github.com/avolkov/geotrack/internal/models"
	"github.com/avolkov/geotrack/internal/ratelimit"
	"github.com/avolkov/geotrack/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}

type stubLocationService struct{}

func (stubLocationService) Save(ctx context.Context, lat, lon float64) (*models.Location, error) {
	return &models.Location{ID: 1, Latitude: lat, Longitude: lon}, nil
}

func (stubLocationService) Statistics(ctx context.Context) (*service.Statistics, error) {
	return &service.Statistics{}, nil
}

type noopErrorLogRepo struct{}

func (noopErrorLogRepo) Create(ctx context.Context, message, endpoint string) error {
	return nil
}

func newTestServer(db DBPinger) *Server {
	gin.SetMode(gin.TestMode)

	logger := zerolog.Nop()
	s := &Server{
		router:          gin.New(),
		config:          &config.Config{},
		db:              db,
		limiter:         ratelimit.NewMemorySlidingWindow(60, time.Minute),
		errorSink:       service.NewErrorSink(noopErrorLogRepo{}, logger),
		locationHandler: handler.NewLocationHandler(stubLocationService{}, logger),
		logger:          logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func TestUnmatchedRouteReturns404(t *testing.T) {
	s := newTestServer(stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/no/such/route", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not found", resp["error"])
}

func TestHealthCheck_DatabaseConnected(t *testing.T) {
	s := newTestServer(stubPinger{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "connected", resp["database"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	s := newTestServer(stubPinger{err: errors.New("dial tcp: connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp["status"])
	assert.Equal(t, "disconnected", resp["database"])
	assert.Contains(t, resp["error"], "connection refused")
}
