package logging

import (
	"io"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the application logger. Output goes to stderr; when a log
// file is configured it is duplicated there with size-based rotation.
func New(level string, logFile string) *logrus.Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	logger.SetFormatter(&nested.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		HideKeys:        false,
		FieldsOrder:     []string{"intent", "action", "stage"},
	})

	if logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
		}
		logger.SetOutput(io.MultiWriter(os.Stderr, rotated))
	} else {
		logger.SetOutput(os.Stderr)
	}

	return logger
}
