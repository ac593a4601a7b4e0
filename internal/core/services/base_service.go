package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/msaadaplus/msaada_backend/internal/core/ports/clients"
	"github.com/msaadaplus/msaada_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
	// Events receives analytics events. Nil disables tracking.
	Events clients.EventTracker
}

// Now returns the current time from the service clock.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Track sends an analytics event if a tracker is configured.
func (s *BaseService) Track(distinctID, event string, properties map[string]any) {
	if s.Events == nil || distinctID == "" {
		return
	}
	s.Events.Enqueue(distinctID, event, properties)
}

// ServiceOption is a functional option shared by the services' constructors.
type ServiceOption func(*BaseService)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// WithEventTracker sends service events to tracker.
func WithEventTracker(tracker clients.EventTracker) ServiceOption {
	return func(s *BaseService) {
		s.Events = tracker
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{}
	for _, option := range options {
		option(&base)
	}
	return base
}

// validID reports whether id can name a stored row. Primary keys are UUIDs, so anything
// else is a lookup miss rather than a storage error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
