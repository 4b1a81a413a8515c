package db

import (
	"context"
	"errors"
	"time"

	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger forwards gorm's statement log onto the application logger.
type GormLogger struct {
	logger   logging.Logger
	category logging.Category
	level    gormlogger.LogLevel
}

func NewGormLogger(logger logging.Logger, category logging.Category) *GormLogger {
	return &GormLogger{logger: logger, category: category, level: gormlogger.Warn}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Errorf(msg, args...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error(l.category, logging.Select, err.Error(), map[logging.ExtraKey]any{
			logging.SQL:          sql,
			logging.RowsAffected: rows,
			logging.Latency:      elapsed.String(),
		})
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.Warn(l.category, logging.Select, "slow query", map[logging.ExtraKey]any{
			logging.SQL:          sql,
			logging.RowsAffected: rows,
			logging.Latency:      elapsed.String(),
		})
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.Debug(l.category, logging.Select, "query", map[logging.ExtraKey]any{
			logging.SQL:          sql,
			logging.RowsAffected: rows,
			logging.Latency:      elapsed.String(),
		})
	}
}
