package service

import (
	"context"

	"github.com/rs/zerolog"
)

type ErrorLogRepository interface {
	Create(ctx context.Context, message, endpoint string) error
}

// ErrorSink is the best-effort write path for operational errors. A failed
// write must never abort the caller's request, so Record swallows errors
// and only notes them in the operational log.
type ErrorSink struct {
	repository ErrorLogRepository
	logger     zerolog.Logger
}

func NewErrorSink(repo ErrorLogRepository, logger zerolog.Logger) *ErrorSink {
	return &ErrorSink{
		repository: repo,
		logger:     logger,
	}
}

func (s *ErrorSink) Record(ctx context.Context, message, endpoint string) {
	if err := s.repository.Create(ctx, message, endpoint); err != nil {
		s.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Msg("failed to write error log entry")
	}
}
