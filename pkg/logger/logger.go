// Package logger provides the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 14
)

var (
	logger *logrus.Logger
	mu     sync.Mutex
)

// InitLogger initializes the global logger for CLI operations
func InitLogger(logLevel string, noColor bool) {
	mu.Lock()
	defer mu.Unlock()

	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: noColor,
		ForceColors:   !noColor,
		FullTimestamp: true,
	})
}

// SetOutputFile redirects log output to a size-rotated file. Colors are
// disabled since the output is no longer a terminal.
func SetOutputFile(path string) {
	l := GetLogger()
	mu.Lock()
	defer mu.Unlock()
	l.SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	})
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
}

// SetOutput sets the writer log lines are written to, mostly useful in tests.
func SetOutput(w io.Writer) {
	l := GetLogger()
	mu.Lock()
	defer mu.Unlock()
	l.SetOutput(w)
}

// GetLogger returns the configured logger instance
func GetLogger() *logrus.Logger {
	mu.Lock()
	initialized := logger != nil
	mu.Unlock()
	if !initialized {
		InitLogger("info", true)
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Info(msg)
}

// Debug logs a debug message (only shown when debug level is enabled)
func Debug(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Debug(msg)
}

// Error logs an error message
func Error(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Error(msg)
}

// Warn logs a warning message
func Warn(msg string, fields ...logrus.Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Warn(msg)
}

// Success logs a success message as info with success indicator
func Success(msg string, fields ...logrus.Fields) {
	merged := mergeFields(fields...)
	merged["status"] = "success"
	GetLogger().WithFields(merged).Info(msg)
}

func mergeFields(fields ...logrus.Fields) logrus.Fields {
	result := make(logrus.Fields)
	for _, field := range fields {
		for k, v := range field {
			result[k] = v
		}
	}
	return result
}
