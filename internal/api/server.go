package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/remiteasy/ledger/internal/engine"
)

// defaultRateLimit is the request rate allowed when none is configured.
const defaultRateLimit = 50

// Server wires the ledger engine to its HTTP surface.
type Server struct {
	engine  *engine.Engine
	log     *slog.Logger
	secret  []byte
	limiter *rate.Limiter
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithRateLimit sets the allowed requests per second.
func WithRateLimit(rps float64) Option {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// NewServer creates a Server. secret signs and verifies bearer tokens.
func NewServer(e *engine.Engine, secret []byte, opts ...Option) *Server {
	s := &Server{
		engine:  e,
		log:     slog.Default(),
		secret:  secret,
		limiter: rate.NewLimiter(defaultRateLimit, defaultRateLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router returns the HTTP routes. Every /v1 route requires a bearer
// token; /healthz and /metrics do not.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logMiddleware, s.rateLimitMiddleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(s.authMiddleware)
	v1.HandleFunc("/initialize", s.handleInitialize).Methods(http.MethodPost)
	v1.HandleFunc("/transfers", s.handleSend).Methods(http.MethodPost)
	v1.HandleFunc("/transfers", s.handleListTransfers).Methods(http.MethodGet)
	v1.HandleFunc("/transfers/{address}", s.handleGetTransfer).Methods(http.MethodGet)
	v1.HandleFunc("/transfers/{address}/receive", s.handleReceive).Methods(http.MethodPost)
	v1.HandleFunc("/transfers/{address}/cancel", s.handleCancel).Methods(http.MethodPost)
	v1.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	v1.HandleFunc("/balance", s.handleBalance).Methods(http.MethodGet)
	v1.HandleFunc("/deposit", s.handleDeposit).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
