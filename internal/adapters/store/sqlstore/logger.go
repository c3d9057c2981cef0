package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/quote-digest/internal/platform/logging"
)

// slogAdapter sends gorm's logs to slog. Statements go out at trace level,
// slow statements at warn and failed statements at error.
type slogAdapter struct {
	logger        *slog.Logger
	slowThreshold time.Duration
	level         gormlogger.LogLevel
}

func newSlogAdapter(logger *slog.Logger, slowThreshold time.Duration) *slogAdapter {
	return &slogAdapter{logger: logger, slowThreshold: slowThreshold, level: gormlogger.Info}
}

func (a *slogAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *a
	clone.level = level

	return &clone
}

func (a *slogAdapter) Info(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Info {
		a.logger.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (a *slogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Warn {
		a.logger.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (a *slogAdapter) Error(ctx context.Context, msg string, args ...any) {
	if a.level >= gormlogger.Error {
		a.logger.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (a *slogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if a.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && a.level >= gormlogger.Error:
		attrs = append(attrs, slog.Any("error", err))
		a.logger.LogAttrs(ctx, slog.LevelError, "sql statement failed", attrs...)
	case a.slowThreshold > 0 && elapsed > a.slowThreshold && a.level >= gormlogger.Warn:
		a.logger.LogAttrs(ctx, slog.LevelWarn, "slow sql statement", attrs...)
	case a.level >= gormlogger.Info:
		a.logger.LogAttrs(ctx, logging.LevelTrace, "sql statement", attrs...)
	}
}
