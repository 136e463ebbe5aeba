package eventstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

const logEventsPath = "/2.0/log/eventstream"

// HTTPSink posts gzip compressed events to an eventstream endpoint.
type HTTPSink struct {
	client     *http.Client
	endpoint   string
	gzipHeader string
}

// NewHTTPSink creates a sink posting to baseURL. gzipHeader names the header
// that tells the endpoint the body is compressed.
func NewHTTPSink(baseURL, gzipHeader string, timeout time.Duration) (*HTTPSink, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid eventstream URL %s", baseURL)
	}
	client := cleanhttp.DefaultClient()
	client.Timeout = timeout
	return &HTTPSink{
		client:     client,
		endpoint:   u.JoinPath(logEventsPath).String(),
		gzipHeader: gzipHeader,
	}, nil
}

// Send posts one event.
func (s *HTTPSink) Send(ctx context.Context, event Event) error {
	env, err := newEnvelope(event)
	if err != nil {
		return err
	}
	body, err := json.Marshal(logEventsRequest{Events: []envelope{env}})
	if err != nil {
		return errors.Wrap(err, "failed to encode eventstream request")
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return errors.Wrap(err, "failed to compress eventstream request")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "failed to compress eventstream request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &buf)
	if err != nil {
		return errors.Wrap(err, "failed to create eventstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	if s.gzipHeader != "" {
		req.Header.Set(s.gzipHeader, "true")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send events")
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Wrapf(errors.ErrEventRejected, "status %d", resp.StatusCode)
	}
	logger.Debug("Sent event", logrus.Fields{"catalog": event.CatalogName()})
	return nil
}
