package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ridehail/config"
	deliverycontext "ridehail/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// queryLogger routes GORM output through slog, preferring the request-scoped logger
// so SQL lines carry the request ID. Bind values are never rendered into the SQL
// text because they include session tokens and password hashes.
type queryLogger struct {
	base          *slog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

var (
	_ logger.Interface  = (*queryLogger)(nil)
	_ gorm.ParamsFilter = (*queryLogger)(nil)
)

func newQueryLogger(base *slog.Logger, cfg *config.Config) *queryLogger {
	level := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = logger.Info
	}

	return &queryLogger{
		base:          base,
		level:         level,
		slowThreshold: slowQueryThreshold,
	}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

// ParamsFilter drops bind values so they never reach the log.
func (l *queryLogger) ParamsFilter(_ context.Context, sql string, _ ...any) (string, []any) {
	return sql, nil
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.print(ctx, logger.Info, slog.LevelInfo, msg, args...)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.print(ctx, logger.Warn, slog.LevelWarn, msg, args...)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.print(ctx, logger.Error, slog.LevelError, msg, args...)
}

func (l *queryLogger) print(ctx context.Context, enabledAt logger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.level < enabledAt || l.base == nil {
		return
	}

	l.logger(ctx).LogAttrs(ctx, level, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.base == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && !isExpectedQueryError(err) && l.level >= logger.Error:
		l.logger(ctx).LogAttrs(ctx, slog.LevelError, "query failed",
			append(queryAttrs(fc, elapsed), slog.String("error", err.Error()))...)

	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		l.logger(ctx).LogAttrs(ctx, slog.LevelWarn, "slow query",
			append(queryAttrs(fc, elapsed), slog.Duration("threshold", l.slowThreshold))...)

	case l.level >= logger.Info:
		l.logger(ctx).LogAttrs(ctx, slog.LevelDebug, "query", queryAttrs(fc, elapsed)...)
	}
}

func (l *queryLogger) logger(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(ctx, l.base)
}

func queryAttrs(fc func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := fc()

	return []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", elapsed),
	}
}

// isExpectedQueryError reports errors that are normal outcomes for this service:
// unknown accounts and unique-index conflicts on register and logout.
func isExpectedQueryError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || isUniqueConstraintViolation(err)
}
