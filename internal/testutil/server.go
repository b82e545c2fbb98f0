package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// SnapshotServer serves a data.json document and records every request.
type SnapshotServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []*url.URL
}

// NewSnapshotServer starts a server answering GET /data.json with body.
// The server is closed when the test ends.
func NewSnapshotServer(t *testing.T, body string) *SnapshotServer {
	t.Helper()
	s := &SnapshotServer{status: http.StatusOK, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *SnapshotServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u := *r.URL
	s.requests = append(s.requests, &u)
	status, body := s.status, s.body
	s.mu.Unlock()

	if r.URL.Path != "/data.json" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// DataURL returns the absolute URL of the served document.
func (s *SnapshotServer) DataURL() string {
	return s.URL + "/data.json"
}

// Respond changes the status code and body for subsequent requests.
func (s *SnapshotServer) Respond(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

// Requests returns the URLs requested so far.
func (s *SnapshotServer) Requests() []*url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*url.URL, len(s.requests))
	copy(out, s.requests)
	return out
}
