package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerCollections) }

func registerCollections(r chi.Router, d deps.Deps) {
	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", handlers.ListFavorites(d))
		r.Post("/", handlers.AddFavorite(d))
		r.Delete("/", handlers.ClearFavorites(d))
		r.Get("/{name}", handlers.IsFavorited(d))
		r.Delete("/{name}", handlers.RemoveFavorite(d))
	})

	r.Get("/history", handlers.ListHistory(d))
	r.Delete("/history", handlers.ClearHistory(d))

	r.Get("/preferences", handlers.Preferences(d))
	r.Patch("/preferences", handlers.UpdatePreferences(d))
}
