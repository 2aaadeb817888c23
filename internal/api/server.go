// Package api provides the HTTP server for the deck picker service.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jarnr/preconceive/internal/picker"
	"github.com/jarnr/preconceive/internal/ratelimit"
)

// Server represents the HTTP server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	host       string
	port       int

	picker  *picker.Service
	limiter *ratelimit.Limiter
}

// Config holds configuration for the HTTP server.
type Config struct {
	Host string
	Port int
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
	}
}

// NewServer creates a new HTTP server around the picker service.
func NewServer(cfg *Config, svc *picker.Service) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		router:  chi.NewRouter(),
		host:    cfg.Host,
		port:    cfg.Port,
		picker:  svc,
		limiter: ratelimit.NewLimiter(ratelimit.DefaultWindow, ratelimit.DefaultMax),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	// Request ID for tracing
	s.router.Use(middleware.RequestID)

	// Real IP detection
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(middleware.Logger)

	// Panic recovery
	s.router.Use(middleware.Recoverer)

	// Request timeout; generous enough for a full paginated upstream fetch
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration (read-only API)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))

	// Security headers on every response
	s.router.Use(securityHeaders)
}

// securityHeaders injects baseline security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %d", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}

// Port returns the port the server is configured to listen on.
func (s *Server) Port() int {
	return s.port
}

// Handler returns the root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
