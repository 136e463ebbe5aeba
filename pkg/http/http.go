// Package http provides the retrying HTTP client used to talk to the remote Maven repository.
package http

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/auth"
	"github.com/glorpus-work/artifactswap/pkg/config"
	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/sync/semaphore"
)

const (
	retryWaitMin = 100 * time.Millisecond
	retryWaitMax = 2 * time.Second
)

// MavenClient is a Client backed by go-retryablehttp. At most
// cfg.MaxRequests calls are in flight at once, and cfg.Timeout bounds a
// whole call including its retries.
type MavenClient struct {
	client    *retryablehttp.Client
	baseURL   *url.URL
	userAgent string
	auth      auth.Authenticator
	requests  *semaphore.Weighted
	timeout   time.Duration
}

// NewMavenClient creates a client rooted at baseURL. authenticator may be nil.
func NewMavenClient(baseURL string, cfg config.HTTPConfig, authenticator auth.Authenticator) (*MavenClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid repository URL %s", baseURL)
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.MaxConnsPerHost = cfg.MaxConnsPerHost
	transport.MaxIdleConnsPerHost = cfg.MaxConnsPerHost
	transport.MaxIdleConns = cfg.MaxIdleConns
	transport.ResponseHeaderTimeout = cfg.Timeout

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Transport: transport}
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.CheckRetry = RetryOnConnectionFailure
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = LeveledLogger{}

	return &MavenClient{
		client:    client,
		baseURL:   u,
		userAgent: cfg.UserAgent,
		auth:      authenticator,
		requests:  semaphore.NewWeighted(int64(max(cfg.MaxRequests, 1))),
		timeout:   cfg.Timeout,
	}, nil
}

// RetryOnConnectionFailure retries only when no response was received at all.
// Any HTTP status, including 5xx, is handed back to the caller as is. Timeouts
// are not retried.
func RetryOnConnectionFailure(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err == nil {
		return false, nil
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return false, err
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return false, err
	}
	return true, nil
}

// Get downloads the resource at path.
func (c *MavenClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path)
}

// Head checks the resource at path.
func (c *MavenClient) Head(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodHead, path)
}

// URL resolves path against the base URL.
func (c *MavenClient) URL(path string) string {
	return c.baseURL.JoinPath(path).String()
}

func (c *MavenClient) do(ctx context.Context, method, path string) (*Response, error) {
	if err := c.requests.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer c.requests.Release(1)

	start := time.Now()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.URL(path), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.auth != nil {
		if err := c.auth.Apply(req.Request); err != nil {
			return nil, errors.Wrap(err, "failed to authenticate request")
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body of %s", path)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Duration:   time.Since(start),
	}, nil
}
