package web

import (
	"net"
	"net/http"
)

// limitSubmissions throttles POST requests per client IP. Read-only
// traffic passes through untouched.
func (s *Server) limitSubmissions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil || r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		if !s.limiter.Allow(clientIP(r)) {
			s.renderError(w, http.StatusTooManyRequests, "Too many submissions, slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the request's remote IP. RealIP middleware has
// already folded X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
