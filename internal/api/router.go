package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jarnr/preconceive/internal/api/handlers"
	"github.com/jarnr/preconceive/internal/api/response"
	"github.com/jarnr/preconceive/internal/ratelimit"
)

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	// Landing page
	s.router.Get("/", handlers.Landing)

	// Health check endpoint
	s.router.Get("/health", s.healthCheck)

	// Prometheus metrics
	s.router.Handle("/metrics", promhttp.Handler())

	// Deck pick endpoint, rate limited per client
	pickHandler := handlers.NewPickHandler(s.picker)
	s.router.With(ratelimit.Middleware(s.limiter)).Get("/pick", pickHandler.Pick)
}

// healthCheck reports server liveness.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
