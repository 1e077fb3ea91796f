package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is a request received by a Server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// Server is a fake PostgREST endpoint that records every request.
type Server struct {
	*httptest.Server
	mu       sync.Mutex
	requests []RecordedRequest
}

// NewServer starts a Server answering with handler. It is closed when the
// test finishes.
func NewServer(t testing.TB, handler http.HandlerFunc) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Requests returns the requests received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Last returns the most recent request. It panics if none was received.
func (s *Server) Last() RecordedRequest {
	reqs := s.Requests()
	return reqs[len(reqs)-1]
}

// Respond returns a handler writing status, body and headers (name, value pairs).
func Respond(status int, body string, headers ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i+1 < len(headers); i += 2 {
			w.Header().Set(headers[i], headers[i+1])
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

// RespondFixture is Respond with the body read from testdata.
func RespondFixture(t testing.TB, status int, filename string, headers ...string) http.HandlerFunc {
	t.Helper()
	body, err := LoadFixture(filename)
	if err != nil {
		t.Fatalf("loading fixture %s: %v", filename, err)
	}
	return Respond(status, string(body), append([]string{"Content-Type", "application/json"}, headers...)...)
}
