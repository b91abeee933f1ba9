// Package server exposes the catalog as a JSON API for the rendering layer and
// the admin screens.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	ut "github.com/go-playground/universal-translator"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/at-ishikawa/penguins/internal/catalog"
	"github.com/at-ishikawa/penguins/internal/config"
)

// maxBodyBytes bounds request bodies. Images are referenced by URL, so records are small.
const maxBodyBytes = 1 << 20

// HealthChecker reports whether the database can be reached.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog    *catalog.Service
	health     HealthChecker
	validator  *validator.Validate
	translator ut.Translator
}

func NewHandler(c *catalog.Service, health HealthChecker) (*Handler, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}
	return &Handler{
		catalog:    c,
		health:     health,
		validator:  validate,
		translator: trans,
	}, nil
}

// NewRouter wires the routes and the middleware stack.
func NewRouter(h *Handler, logger zerolog.Logger, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(requestIDLogger)
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         3600,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/penguins", func(r chi.Router) {
			r.Get("/", h.ListPenguins)
			r.Post("/", h.CreatePenguin)
			r.Get("/{id}", h.GetPenguin)
			r.Patch("/{id}", h.UpdatePenguin)
			r.Delete("/{id}", h.DeletePenguin)
			r.Get("/{id}/memories", h.ListPenguinMemories)
		})
		r.Route("/memories", func(r chi.Router) {
			r.Get("/", h.ListMemories)
			r.Post("/", h.CreateMemory)
			r.Get("/years", h.MemoriesByYear)
			r.Get("/on-this-day", h.OnThisDay)
			r.Get("/{id}", h.GetMemory)
			r.Patch("/{id}", h.UpdateMemory)
			r.Delete("/{id}", h.DeleteMemory)
		})
		r.Get("/stats", h.Stats)
		r.Get("/gallery", h.Gallery)
	})
	return r
}

// requestIDLogger adds the chi request id to the request logger.
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("request_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
