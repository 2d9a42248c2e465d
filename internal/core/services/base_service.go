package services

import (
	"context"
	"log/slog"

	"github.com/quillbooks/quillbooks/internal/middleware"
)

// BaseService is embedded by every service and gives them the
// request-scoped logger without threading it through each call.
type BaseService struct{}

// GetLogger returns the logger carried in ctx, or the process default.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs err plus any extra attributes at error level.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := append([]any{slog.String("error", err.Error())}, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs msg with the given attributes at info level.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs msg with the given attributes at debug level.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
