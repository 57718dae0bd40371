package httpapi

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/httpapi/middleware"
	"github.com/nizram/ping-monitor/internal/monitor"
)

// Server exposes the engine over HTTP. With a config attached, mutations
// are written back to the config file so they survive a restart.
type Server struct {
	Logger     *zap.Logger
	Engine     *monitor.Engine
	Keys       middleware.Keys
	RatePerMin int
	RateBurst  int

	mu  sync.Mutex // serializes mutations across engine and config
	cfg *config.Config
}

// NewServer wires the API over eng. cfg may be nil for a purely in-memory
// server.
func NewServer(l *zap.Logger, eng *monitor.Engine, cfg *config.Config, settings config.Settings) *Server {
	return &Server{
		Logger:     l,
		Engine:     eng,
		Keys:       middleware.Keys{Public: settings.APIKeys, Admin: settings.AdminKeys},
		RatePerMin: settings.RatePerMin,
		RateBurst:  settings.RateBurst,
		cfg:        cfg,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(s.RatePerMin, s.RateBurst))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/targets", func(r chi.Router) {
		r.With(middleware.RequireAny(s.Keys)).Get("/", s.handleListTargets)
		r.With(middleware.RequireAny(s.Keys)).Get("/{id}", s.handleGetTarget)
		r.With(middleware.RequireAdmin(s.Keys)).Post("/", s.handleAddTarget)
		r.With(middleware.RequireAdmin(s.Keys)).Delete("/{id}", s.handleRemoveTarget)
	})

	return r
}
