package http

import (
	"fmt"

	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

// LeveledLogger routes retryablehttp logging through the application logger.
type LeveledLogger struct{}

var _ retryablehttp.LeveledLogger = LeveledLogger{}

func (LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Error(msg, toFields(keysAndValues))
}

// Info is demoted to debug, retryablehttp is chatty at info.
func (LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, toFields(keysAndValues))
}

func (LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, toFields(keysAndValues))
}

func (LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	if len(keysAndValues)%2 == 1 {
		fields["extra"] = keysAndValues[len(keysAndValues)-1]
	}
	return fields
}
