package ratelimit

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/jarnr/preconceive/internal/api/response"
	"github.com/jarnr/preconceive/internal/metrics"
)

// ClientKey derives the client identity for rate limiting: the first entry
// of X-Forwarded-For when present, otherwise the direct peer address.
func ClientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

// Middleware rejects requests from clients over the limit with 429 before
// they reach the handler.
func Middleware(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Admit(ClientKey(r)) {
				metrics.RateLimitDenials.Inc()
				w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
				response.TooManyRequests(w, errors.New("rate limit exceeded, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
