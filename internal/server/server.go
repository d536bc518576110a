package server

import (
	"net/http"

	"github.com/vinifbn/instagram-insights-api/internal/aggregator"
	"github.com/vinifbn/instagram-insights-api/internal/instagram"
	"github.com/vinifbn/instagram-insights-api/internal/ratelimit"
	"github.com/vinifbn/instagram-insights-api/internal/session"
	"github.com/vinifbn/instagram-insights-api/pkg/config"
	"github.com/vinifbn/instagram-insights-api/pkg/logger"
	"go.uber.org/fx"
)

type Server struct {
	Config     *config.Config
	Logger     logger.Logger
	Sessions   session.Store
	Instagram  instagram.Client
	Aggregator aggregator.Client
	Limiter    ratelimit.Limiter
}

type Opts struct {
	fx.In

	Config     *config.Config
	Logger     logger.Logger
	Sessions   session.Store
	Instagram  instagram.Client
	Aggregator aggregator.Client
	Limiter    ratelimit.Limiter
}

func New(opts Opts) *Server {
	return &Server{
		Config:     opts.Config,
		Logger:     opts.Logger,
		Sessions:   opts.Sessions,
		Instagram:  opts.Instagram,
		Aggregator: opts.Aggregator,
		Limiter:    opts.Limiter,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/auth/instagram", s.handleAuthorize)
	mux.HandleFunc("/api/auth/callback/instagram", s.handleCallback)
	mux.HandleFunc("/api/instagram/session", s.handleSession)
	mux.HandleFunc("/api/instagram/media", s.handleMedia)
	mux.HandleFunc("/api/instagram/profile", s.handleProfile)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}
