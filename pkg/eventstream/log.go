package eventstream

import (
	"context"

	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/sirupsen/logrus"
)

// LogSink writes events to the process log.
type LogSink struct{}

// Send logs the event fields at info level.
func (LogSink) Send(_ context.Context, event Event) error {
	f, err := fields(event)
	if err != nil {
		return err
	}
	f["catalog"] = event.CatalogName()
	logger.Info("Run finished", logrus.Fields(f))
	return nil
}
