package gorm

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres opens a Postgres database logging to log.
// A nil log uses the logrus standard logger.
func NewPostgres(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	config := &gorm.Config{Logger: LogrusLogger}
	if log != nil {
		config.Logger = NewLogrusLogger(log)
	}

	return gorm.Open(postgres.Open(dsn), config)
}
