// Package testutil provides a fake remote Maven repository and helpers that
// lay out a local Maven repository for tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// MavenServer is an in-memory Maven repository served over HTTP.
// Paths are relative to the server root, without a leading slash.
type MavenServer struct {
	server *httptest.Server

	mu       sync.Mutex
	files    map[string][]byte
	statuses map[string]int
	requests []Request
}

// Request records one request received by the server.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

// NewMavenServer starts a server that is closed when the test ends.
func NewMavenServer(t *testing.T) *MavenServer {
	t.Helper()
	s := &MavenServer{
		files:    make(map[string][]byte),
		statuses: make(map[string]int),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.server.Close)
	return s
}

// URL returns the base URL of the server.
func (s *MavenServer) URL() string { return s.server.URL }

// AddFile serves body at path.
func (s *MavenServer) AddFile(path string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[strings.TrimPrefix(path, "/")] = body
}

// SetStatus makes every request to path answer with status and no body.
func (s *MavenServer) SetStatus(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[strings.TrimPrefix(path, "/")] = status
}

// SetStatusForPrefix makes every request below prefix answer with status.
func (s *MavenServer) SetStatusForPrefix(prefix string, status int) {
	s.SetStatus(strings.TrimSuffix(strings.TrimPrefix(prefix, "/"), "/")+"/*", status)
}

// Requests returns a copy of the requests received so far.
func (s *MavenServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests returns how many requests were made with method.
func (s *MavenServer) CountRequests(method string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method {
			n++
		}
	}
	return n
}

func (s *MavenServer) handle(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          path,
		Authorization: r.Header.Get("Authorization"),
	})
	status, hasStatus := s.statusFor(path)
	body, hasFile := s.files[path]
	s.mu.Unlock()

	switch {
	case hasStatus:
		w.WriteHeader(status)
	case !hasFile:
		http.NotFound(w, r)
	case r.Method == http.MethodHead:
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(body)
	}
}

// statusFor must be called with mu held.
func (s *MavenServer) statusFor(path string) (int, bool) {
	if status, ok := s.statuses[path]; ok {
		return status, true
	}
	for pattern, status := range s.statuses {
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok && strings.HasPrefix(path, prefix+"/") {
			return status, true
		}
	}
	return 0, false
}
