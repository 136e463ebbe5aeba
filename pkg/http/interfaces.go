//go:generate mockgen -destination=mocks/http.go . Client
package http

import (
	"context"
	"time"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	// Duration covers the request including retries and reading the body.
	Duration time.Duration
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// IsClientError reports a 4xx status.
func (r *Response) IsClientError() bool { return r.StatusCode >= 400 && r.StatusCode < 500 }

// Client defines the interface for HTTP operations against the remote Maven repository.
// Paths are relative to the configured base URL.
type Client interface {
	// Get downloads the resource at path. Non-2xx statuses are not errors.
	Get(ctx context.Context, path string) (*Response, error)

	// Head checks the resource at path. The returned body is always empty.
	Head(ctx context.Context, path string) (*Response, error)
}
