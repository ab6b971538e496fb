package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/httpserver/handlers"
)

func init() { RegisterAPI(registerGenerate) }

func registerGenerate(r chi.Router, d deps.Deps) {
	r.Get("/generate", handlers.GeneratorTypes(d))
	r.Post("/generate/{type}", handlers.Generate(d))
	r.Get("/featured", handlers.Featured(d))
	r.Get("/search", handlers.Search(d))
}
