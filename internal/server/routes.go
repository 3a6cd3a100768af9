package server

import (
	"encoding/json"
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) registerRoutes(r chi.Router) {
	h := s.handlers

	r.Get("/", root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Post("/analyze", h.Analyze)

		r.Get("/sentiment/today", h.SentimentToday)
		r.Get("/trend", h.Trend)
		r.Get("/history", h.History)

		r.Get("/s3/objects", h.ListObjects)
	})

	r.Method(http.MethodGet, "/debug/vars", expvar.Handler())
}

// root answers with basic service information.
func root(w http.ResponseWriter, _ *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]string{
		"name":        "pulse",
		"description": "market sentiment analysis API",
		"health":      "/api/health",
	})
}
