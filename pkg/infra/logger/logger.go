package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const logDir = "logs"

// NewLogger builds the JSON logger for the given server type. Entries go to
// logs/<serverType>.log through an async buffered writer and are mirrored to
// stdout. The returned function flushes and closes the log file.
func NewLogger(serverType string) (*logrus.Logger, func()) {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))
	logger.AddHook(NewConsoleHook(os.Stdout))

	logFile, err := logFilePath(serverType)
	if err != nil {
		logger.WithError(err).Warn("file logging disabled")
		logger.SetOutput(discard{})
		return logger, func() {}
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		logger.WithError(err).Warn("file logging disabled")
		logger.SetOutput(discard{})
		return logger, func() {}
	}
	logger.SetOutput(asyncWriter)

	return logger, asyncWriter.Close
}

func levelFromEnv(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func logFilePath(serverType string) (string, error) {
	if serverType == "" || strings.ContainsAny(serverType, `/\.`) {
		return "", fmt.Errorf("invalid server type for log file: %q", serverType)
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create logs directory: %w", err)
	}
	return filepath.Join(logDir, serverType+".log"), nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
