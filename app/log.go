package app

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LogConfig sets the logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Configure applies the configuration to the logger.
// Level defaults to info, format to text.
func Configure(log *logrus.Logger, config LogConfig) error {
	level := logrus.InfoLevel
	if config.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(config.Level); err != nil {
			return errors.Wrap(err, "parse log level")
		}
	}

	log.SetLevel(level)
	switch config.Format {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(new(logrus.JSONFormatter))
	default:
		return errors.Errorf("unsupported log format: %s", config.Format)
	}

	return nil
}
