package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jaminalder/minimal-tic-tac-toe/internal/app"
)

// Options tune the HTTP front end.
type Options struct {
	CookieName string
	Heartbeat  time.Duration
}

const (
	defaultCookieName = "ttt_session"
	defaultHeartbeat  = 15 * time.Second
)

// NewServer wires routes and returns an http.Handler. It also installs the
// game fragment as the service's broadcast renderer.
func NewServer(s *app.Service, logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = defaultHeartbeat
	}
	log := logger.With(zap.String("component", "web"))
	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		log:       log,
		cookie:    opts.CookieName,
		heartbeat: opts.Heartbeat,
	}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderGame(gs, false) })

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/healthz", h.healthz)
	r.Get("/events", h.events)
	r.Post("/move", h.move)
	r.Post("/reset", h.reset)
	return r
}

func accessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
