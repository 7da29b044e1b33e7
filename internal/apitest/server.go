// Package apitest runs an in-process fake of the authentication service for
// tests. It follows the real service's wire behavior, including its quirks:
// a duplicate registration is answered with HTTP 200 and an error envelope
// in the body, and a failed login is reported as a 500.
package apitest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Request is a recorded inbound request.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type user struct {
	id           int
	username     string
	email        string
	passwordHash []byte
}

// Server is the fake service. Create one with New.
type Server struct {
	srv *httptest.Server

	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu          sync.Mutex
	users       map[string]*user
	nextID      int
	requests    []Request
	profileGate chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens. The default is one hour.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// WithClock replaces the server's clock for token issue and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithSecret sets the HS256 signing key.
func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

// New starts a Server that is closed when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		secret: []byte("apitest-secret"),
		ttl:    time.Hour,
		now:    time.Now,
		users:  make(map[string]*user),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.srv = httptest.NewServer(s.Handler())
	t.Cleanup(s.Close)
	return s
}

// Handler returns the router without starting a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)

	r.Post("/register", s.register)
	r.Post("/login", s.login)
	r.Get("/profile", s.profile)
	return r
}

// URL is the base URL of the running server.
func (s *Server) URL() string { return s.srv.URL }

// Close stops the server and releases any held profile requests.
func (s *Server) Close() {
	s.ReleaseProfile()
	s.srv.Close()
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the recorded requests whose path is path.
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// HoldProfile makes /profile requests block until ReleaseProfile is called
// or the client gives up.
func (s *Server) HoldProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profileGate == nil {
		s.profileGate = make(chan struct{})
	}
}

// ReleaseProfile unblocks held /profile requests.
func (s *Server) ReleaseProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profileGate != nil {
		close(s.profileGate)
		s.profileGate = nil
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}
