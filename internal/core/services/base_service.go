package services

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/Omniportal2025/omniportal-sub001/internal/apperrors"
	"github.com/Omniportal2025/omniportal-sub001/internal/core/domain"
	"github.com/Omniportal2025/omniportal-sub001/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	now func() time.Time
}

// Now returns the service clock, defaulting to UTC wall time.
func (s *BaseService) Now() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now()
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

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeRole checks that actor holds one of the allowed roles.
func (s *BaseService) AuthorizeRole(ctx context.Context, actor domain.Actor, operation string, allowed ...domain.ActorRole) error {
	if slices.Contains(allowed, actor.Role) {
		return nil
	}
	err := apperrors.NewForbiddenError("role " + string(actor.Role) + " may not " + operation)
	s.LogWarn(ctx, "Actor not authorized",
		slog.String("actor_id", actor.ID),
		slog.String("role", string(actor.Role)),
		slog.String("operation", operation))
	return err
}
