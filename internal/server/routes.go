package server

import (
	"expvar"

	"github.com/go-chi/chi/v5"

	"github.com/tsforecast/ainode/internal/server/handlers"
)

func (s *Server) registerRoutes(r chi.Router) {
	h := handlers.New(s.registry, s.resolver)
	h.SetLogger(s.logger)
	h.SetRequestID(RequestIDFromContext)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Capability discovery
		r.Get("/families", h.ListFamilies)
		r.Get("/families/{familyID}", h.GetFamily)

		// Option resolution
		r.Post("/families/{familyID}/resolve", h.ResolveOptions)
	})

	r.Handle("/debug/vars", expvar.Handler())
}
