package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// RateLimitRPS limits POST requests per client IP; 0 disables limiting.
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	mux *chi.Mux
	api huma.API
}

func New(opts Options) *Server {
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	m.Use(Peer) // must run before RealIP rewrites RemoteAddr
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	m.Use(CORS())
	m.Use(RateLimit(opts.RateLimitRPS, opts.RateLimitBurst))
	m.Use(Timeout(15 * time.Second))

	unprocessableOnce.Do(reportBadInputAsUnprocessable)

	cfg := huma.DefaultConfig("Tour Service API", "1.0.0")
	cfg.Info.Description = "Public tour catalog with booking and inquiry intake."
	cfg.CreateHooks = nil // keep response bodies free of $schema links

	return &Server{mux: m, api: humachi.New(m, cfg)}
}

var unprocessableOnce sync.Once

// reportBadInputAsUnprocessable makes missing and undecodable request bodies
// answer 422 like every other validation failure. huma uses 400 for those.
func reportBadInputAsUnprocessable() {
	base := huma.NewError
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusBadRequest {
			status = http.StatusUnprocessableEntity
		}
		return base(status, msg, errs...)
	}
	baseCtx := huma.NewErrorWithContext
	huma.NewErrorWithContext = func(ctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusBadRequest {
			status = http.StatusUnprocessableEntity
		}
		return baseCtx(ctx, status, msg, errs...)
	}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
