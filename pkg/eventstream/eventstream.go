// Package eventstream reports the outcome of downloader and remover runs.
package eventstream

import (
	"context"
	"encoding/json"

	"github.com/glorpus-work/artifactswap/pkg/errors"
)

// AppName is the application every event is reported under.
const AppName = "artifact_sync"

// Event is one run record. It is serialised with encoding/json.
type Event interface {
	CatalogName() string
}

// Sink delivers events.
type Sink interface {
	Send(ctx context.Context, event Event) error
}

type envelope struct {
	CatalogName string `json:"catalog_name"`
	AppName     string `json:"app_name"`
	JSONData    string `json:"json_data"`
}

type logEventsRequest struct {
	Events []envelope `json:"events"`
}

func newEnvelope(event Event) (envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return envelope{}, errors.Wrapf(err, "failed to encode %s event", event.CatalogName())
	}
	return envelope{CatalogName: event.CatalogName(), AppName: AppName, JSONData: string(data)}, nil
}

// fields flattens an event into its JSON fields.
func fields(event Event) (map[string]any, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s event", event.CatalogName())
	}
	out := make(map[string]any)
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s event", event.CatalogName())
	}
	return out, nil
}
