package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ErrorRecorder interface {
	Record(ctx context.Context, message, endpoint string)
}

// Recovery is the outermost handler boundary: any panic is recorded to the
// error sink and answered with a generic 500.
func Recovery(sink ErrorRecorder, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := c.GetString("request_id")
				logger.Error().
					Str("request_id", requestID).
					Str("path", c.Request.URL.Path).
					Msgf("panic recovered: %v", err)

				sink.Record(c.Request.Context(), fmt.Sprintf("panic: %v", err), c.Request.URL.Path)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
