package eventstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pkgerrors "github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/glorpus-work/artifactswap/pkg/logger"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Result   string `json:"result"`
	Count    int64  `json:"count_things"`
	Duration int64  `json:"total_duration_ms"`
}

func (testEvent) CatalogName() string { return "test_catalog" }

var event = testEvent{Result: "SUCCESS", Count: 3, Duration: 1200}

func TestHTTPSink(t *testing.T) {
	var (
		gotPath   string
		gotHeader string
		gotBody   logEventsRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Test-Gzip")
		zr, err := gzip.NewReader(r.Body)
		require.NoError(t, err)
		data, err := io.ReadAll(zr)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink, err := NewHTTPSink(server.URL, "X-Test-Gzip", time.Second)
	require.NoError(t, err)
	require.NoError(t, sink.Send(context.Background(), event))

	assert.Equal(t, logEventsPath, gotPath)
	assert.Equal(t, "true", gotHeader)
	require.Len(t, gotBody.Events, 1)
	assert.Equal(t, "test_catalog", gotBody.Events[0].CatalogName)
	assert.Equal(t, AppName, gotBody.Events[0].AppName)
	assert.JSONEq(t, `{"result":"SUCCESS","count_things":3,"total_duration_ms":1200}`, gotBody.Events[0].JSONData)
}

func TestHTTPSinkRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	sink, err := NewHTTPSink(server.URL, "", time.Second)
	require.NoError(t, err)
	require.ErrorIs(t, sink.Send(context.Background(), event), pkgerrors.ErrEventRejected)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger.InitLogger("info", true)
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	require.NoError(t, LogSink{}.Send(context.Background(), event))
	out := buf.String()
	assert.Contains(t, out, "Run finished")
	assert.Contains(t, out, "catalog=test_catalog")
	assert.Contains(t, out, "count_things=3")
}

func TestTextfileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "textfile")
	sink := NewTextfileSink(dir)

	require.NoError(t, sink.Send(context.Background(), event))

	data, err := os.ReadFile(sink.Path("test_catalog"))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `artifactswap_test_catalog_count_things{result="SUCCESS"} 3`)
	assert.Contains(t, out, `artifactswap_test_catalog_total_duration_ms{result="SUCCESS"} 1200`)

	// a second event replaces the file
	require.NoError(t, sink.Send(context.Background(), testEvent{Result: "FAILURE", Count: 1}))
	data, err = os.ReadFile(sink.Path("test_catalog"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "SUCCESS")
}

type failingSink struct{ calls int }

func (f *failingSink) Send(context.Context, Event) error {
	f.calls++
	return errors.New("unavailable")
}

type recordingSink struct{ events []Event }

func (r *recordingSink) Send(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return nil
}

func TestMultiSink(t *testing.T) {
	failing := &failingSink{}
	recording := &recordingSink{}

	err := MultiSink{failing, recording}.Send(context.Background(), event)
	require.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, []Event{event}, recording.events, "later sinks still receive the event")

	assert.NoError(t, MultiSink{recording}.Send(context.Background(), event))
	assert.NoError(t, MultiSink{}.Send(context.Background(), event))
}
