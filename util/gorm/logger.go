package gorm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// LogrusLogger writes gorm logs to the logrus standard logger.
var LogrusLogger logger.Interface = NewLogrusLogger(logrus.StandardLogger())

type logrusLogger struct {
	log logrus.FieldLogger
}

// NewLogrusLogger bridges gorm logs onto log. Queries are logged at Trace level.
func NewLogrusLogger(log logrus.FieldLogger) logger.Interface {
	return &logrusLogger{log: log.WithField("component", "gorm")}
}

func (l *logrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}

func (l *logrusLogger) entry(ctx context.Context) logrus.FieldLogger {
	if entry, ok := l.log.(*logrus.Entry); ok {
		return entry.WithContext(ctx)
	}

	return l.log
}

func (l *logrusLogger) Info(ctx context.Context, s string, i ...interface{}) {
	l.entry(ctx).Infof(s, i...)
}

func (l *logrusLogger) Warn(ctx context.Context, s string, i ...interface{}) {
	l.entry(ctx).Warnf(s, i...)
}

func (l *logrusLogger) Error(ctx context.Context, s string, i ...interface{}) {
	l.entry(ctx).Errorf(s, i...)
}

func (l *logrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	sql, rowsAffected := fc()
	l.entry(ctx).
		WithField("elapsed", time.Since(begin)).
		Tracef("%s (%d): %v", sql, rowsAffected, err)
}
