package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avolkov/geotrack/internal/middleware"
	"github.com/avolkov/geotrack/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func TestRequireJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/save_location", middleware.RequireJSON(), okHandler)

	cases := []struct {
		name        string
		contentType string
		wantStatus  int
	}{
		{"json accepted", "application/json", http.StatusOK},
		{"json with charset accepted", "application/json; charset=utf-8", http.StatusOK},
		{"form rejected", "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"text rejected", "text/plain", http.StatusUnsupportedMediaType},
		{"missing rejected", "", http.StatusUnsupportedMediaType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/save_location", strings.NewReader(`{}`))
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := ratelimit.NewMemorySlidingWindow(2, time.Minute)

	router := gin.New()
	router.POST("/save_location", middleware.RateLimit(limiter), okHandler)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/save_location", strings.NewReader(`{}`))
		req.RemoteAddr = "10.0.0.1:50000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))

	second := send()
	require.Equal(t, http.StatusOK, second.Code)

	third := send()
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
}

func TestRateLimit_PerClientKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := ratelimit.NewMemorySlidingWindow(1, time.Minute)

	router := gin.New()
	router.POST("/save_location", middleware.RateLimit(limiter), okHandler)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/save_location", strings.NewReader(`{}`))
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, send("10.0.0.1:50000"))
	require.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:50001"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:50000"),
		"another client must not be throttled by the first client's burst")
}

type recordingSink struct {
	recorded []struct{ message, endpoint string }
}

func (r *recordingSink) Record(ctx context.Context, message, endpoint string) {
	r.recorded = append(r.recorded, struct{ message, endpoint string }{message, endpoint})
}

func TestRecovery_PanicBecomesGeneric500AndIsRecorded(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sink := &recordingSink{}

	router := gin.New()
	router.Use(middleware.Recovery(sink, zerolog.Nop()))
	router.GET("/boom", func(c *gin.Context) {
		panic("unexpected fault with secret detail")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret detail")

	require.Len(t, sink.recorded, 1)
	assert.Contains(t, sink.recorded[0].message, "unexpected fault")
	assert.Equal(t, "/boom", sink.recorded[0].endpoint)
}
