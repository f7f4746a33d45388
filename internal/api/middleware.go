package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/remiteasy/ledger/pkg/types"
)

// callerKey is the context key the auth middleware stores the verified
// caller identity under.
type callerKey struct{}

// callerFrom returns the authenticated caller identity of the request.
func callerFrom(r *http.Request) types.Identity {
	id, _ := r.Context().Value(callerKey{}).(types.Identity)
	return id
}

// authMiddleware verifies the bearer token and injects the caller
// identity into the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		caller, err := parseToken(s.secret, tokenString)
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// rateLimitMiddleware rejects requests beyond the configured rate.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logMiddleware logs one line per request.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.log.InfoContext(r.Context(), "request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
