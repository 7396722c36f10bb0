// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/solar-logbook/internal/config"
)

const timestampFormat = "2006-01-02 15:04:05"

// Setup configures the standard logrus logger from cfg.
// Output goes to w; the programs pass os.Stderr so stdout stays clean
// for dumps.
func Setup(cfg config.LogConfig, w io.Writer) error {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	var f logrus.Formatter
	switch cfg.Format {
	case "", "text":
		f = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		}
	case "json":
		f = &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	default:
		return fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	logrus.SetOutput(w)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(f)
	return nil
}
