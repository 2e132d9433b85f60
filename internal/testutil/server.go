package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is what a Server saw of one incoming request.
type RecordedRequest struct {
	Method string
	URL    *url.URL
	Header http.Header
}

// Server is an httptest server that replies with a canned response and
// records every request it receives.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// Response describes the canned reply of a Server.
type Response struct {
	Status  int
	Body    []byte
	Headers map[string]string
}

// NewServer starts a Server that answers every request with resp. A zero
// Status means 200. The server is closed when the test completes.
func NewServer(t testing.TB, resp Response) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			URL:    r.URL,
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		status := resp.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write(resp.Body)
	}))
	t.Cleanup(s.Close)
	return s
}

// NewFixtureServer starts a Server that answers 200 with the named fixture.
func NewFixtureServer(t testing.TB, fixture string) *Server {
	t.Helper()
	return NewServer(t, Response{Body: Fixture(t, fixture)})
}

// Requests returns the requests received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request. It fails the test when none
// has been received.
func (s *Server) LastRequest(t testing.TB) RecordedRequest {
	t.Helper()

	requests := s.Requests()
	if len(requests) == 0 {
		t.Fatalf("server received no requests")
	}
	return requests[len(requests)-1]
}
