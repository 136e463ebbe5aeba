package eventstream

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// MultiSink sends every event to all of its sinks, even when some fail.
type MultiSink []Sink

// Send delivers event to each sink and aggregates the failures.
func (m MultiSink) Send(ctx context.Context, event Event) error {
	var result *multierror.Error
	for _, s := range m {
		if err := s.Send(ctx, event); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
