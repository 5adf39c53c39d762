package routes

import (
	"acme-ice-cream/flavors/internal/api"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers the flavor CRUD routes
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers) {
	r.Route("/api/flavors", func(flavors chi.Router) {
		flavors.Post("/", handlers.CreateFlavor())
		flavors.Get("/", handlers.ListFlavors())
		flavors.Get("/{id}", handlers.GetFlavor())
		flavors.Put("/{id}", handlers.UpdateFlavor())
		flavors.Delete("/{id}", handlers.DeleteFlavor())
	})
}
