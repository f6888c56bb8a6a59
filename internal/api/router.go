package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/orgball2608/zex-pages/pkg/logger"
)

func NewRouter(h *Handler, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok") })

	r.Route("/inbox", func(r chi.Router) {
		r.Post("/sync", h.syncInbox)
		r.Post("/{item_id}/done", h.markDone)
		r.Post("/{item_id}/reply", h.manualReply)
	})

	r.Post("/responder/run", h.runPass)
	r.Get("/responder/settings", h.getSettings)
	r.Put("/responder/settings", h.saveSettings)

	r.Route("/bulk", func(r chi.Router) {
		r.Get("/", h.getBatch)
		r.Put("/", h.saveBatch)
		r.Get("/targets", h.targets)
		r.Post("/redistribute", h.redistribute)
		r.Post("/commit", h.commit)
	})

	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"requestID", middleware.GetReqID(r.Context()))
		})
	}
}
