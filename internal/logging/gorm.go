package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger forwards GORM's logging to slog. Failed statements are logged at error
// level, slow ones at warn, and every statement at debug when the level allows it.
type GormLogger struct {
	log      *slog.Logger
	slow     time.Duration
	traceSQL bool
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger wraps log. Statements slower than slow are reported as warnings.
func NewGormLogger(log *slog.Logger, slow time.Duration) *GormLogger {
	return &GormLogger{
		log:      log.With("component", "gorm"),
		slow:     slow,
		traceSQL: log.Enabled(context.Background(), slog.LevelDebug),
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.traceSQL = level >= gormlogger.Info
	return &c
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.log.InfoContext(ctx, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.log.WarnContext(ctx, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.log.ErrorContext(ctx, fmt.Sprintf(msg, data...))
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.ErrorContext(ctx, "sql failed", "err", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.slow > 0 && elapsed > l.slow:
		sql, rows := fc()
		l.log.WarnContext(ctx, "slow sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.traceSQL:
		sql, rows := fc()
		l.log.DebugContext(ctx, "sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
