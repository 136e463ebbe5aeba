package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glorpus-work/artifactswap/pkg/auth"
	"github.com/glorpus-work/artifactswap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHTTPConfig() config.HTTPConfig {
	cfg := config.DefaultConfig().HTTP
	cfg.Timeout = 2 * time.Second
	cfg.RetryMax = 2
	return cfg
}

func TestNewMavenClient(t *testing.T) {
	c, err := NewMavenClient("https://repo.example.com/artifactory", testHTTPConfig(), nil)
	require.NoError(t, err)

	transport, ok := c.client.HTTPClient.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 128, transport.MaxConnsPerHost)
	assert.Equal(t, 512, transport.MaxIdleConns)
	assert.Zero(t, c.client.HTTPClient.Timeout)
	assert.Equal(t, 2*time.Second, c.timeout)
	assert.Equal(t, "https://repo.example.com/artifactory/libs/a/b.pom", c.URL("libs/a/b.pom"))

	_, err = NewMavenClient("://bad", testHTTPConfig(), nil)
	require.Error(t, err)
}

func TestMavenClientGet(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "ok", status: http.StatusOK, body: "<project/>"},
		{name: "not found", status: http.StatusNotFound},
		{name: "server error is not retried", status: http.StatusBadGateway, body: "upstream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				assert.Equal(t, "/base/repo/file.pom", r.URL.Path)
				assert.Equal(t, "artifactswap", r.Header.Get("User-Agent"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewMavenClient(srv.URL+"/base", testHTTPConfig(), nil)
			require.NoError(t, err)

			resp, err := c.Get(context.Background(), "repo/file.pom")
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, string(resp.Body))
			assert.Positive(t, resp.Duration)
			assert.Equal(t, int32(1), hits.Load())
		})
	}
}

func TestMavenClientAuth(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	token := auth.BearerAuth{Token: "t0k"}

	reads, err := NewMavenClient(srv.URL, testHTTPConfig(), token)
	require.NoError(t, err)
	_, err = reads.Head(context.Background(), "x.pom")
	require.NoError(t, err)
	assert.Equal(t, "Bearer t0k", gotAuth.Load())

	writesOnly, err := NewMavenClient(srv.URL, testHTTPConfig(), auth.WritesOnly(token))
	require.NoError(t, err)
	_, err = writesOnly.Get(context.Background(), "x.pom")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth.Load())
}

func TestMavenClientConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := testHTTPConfig()
	cfg.RetryMax = 1
	c, err := NewMavenClient(url, cfg, nil)
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "a.jar")
	require.Error(t, err)
}

func TestRetryOnConnectionFailure(t *testing.T) {
	ctx := context.Background()

	retry, err := RetryOnConnectionFailure(ctx, nil, errors.New("connection refused"))
	require.NoError(t, err)
	assert.True(t, retry)

	retry, err = RetryOnConnectionFailure(ctx, &http.Response{StatusCode: http.StatusServiceUnavailable}, nil)
	require.NoError(t, err)
	assert.False(t, retry)

	retry, err = RetryOnConnectionFailure(ctx, nil, context.DeadlineExceeded)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, retry)

	retry, err = RetryOnConnectionFailure(ctx, nil, timeoutError{})
	require.Error(t, err)
	assert.False(t, retry)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	retry, err = RetryOnConnectionFailure(cancelled, nil, errors.New("boom"))
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, retry)
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestMavenClientTimeoutBoundsWholeCall(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := testHTTPConfig()
	cfg.Timeout = 100 * time.Millisecond
	cfg.RetryMax = 3
	c, err := NewMavenClient(srv.URL, cfg, nil)
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Get(context.Background(), "slow.jar")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestMavenClientLimitsRequestsInFlight(t *testing.T) {
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testHTTPConfig()
	cfg.MaxRequests = 2
	c, err := NewMavenClient(srv.URL, cfg, nil)
	require.NoError(t, err)

	done := make(chan error)
	for range 6 {
		go func() {
			_, err := c.Get(context.Background(), "a.jar")
			done <- err
		}()
	}
	for range 6 {
		require.NoError(t, <-done)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Positive(t, peak.Load())
}

func TestResponseClassification(t *testing.T) {
	assert.True(t, (&Response{StatusCode: 204}).IsSuccess())
	assert.False(t, (&Response{StatusCode: 304}).IsSuccess())
	assert.True(t, (&Response{StatusCode: 404}).IsClientError())
	assert.False(t, (&Response{StatusCode: 500}).IsClientError())
}

func TestToFields(t *testing.T) {
	fields := toFields([]interface{}{"url", "http://x", "retries", 2, "dangling"})
	assert.Equal(t, "http://x", fields["url"])
	assert.Equal(t, 2, fields["retries"])
	assert.Equal(t, "dangling", fields["extra"])
}
