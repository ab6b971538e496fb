package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerFilters) }

func registerFilters(r chi.Router, d deps.Deps) {
	r.Route("/filters", func(r chi.Router) {
		r.Get("/", handlers.GetFilters(d))
		r.Patch("/", handlers.UpdateFilters(d))
		r.Delete("/", handlers.ClearFilters(d))
		r.Get("/results", handlers.FilterResults(d))
		r.Delete("/{key}", handlers.RemoveFilter(d))
	})
}
