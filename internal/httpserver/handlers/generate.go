package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/generator"
	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/logger"
)

type generateResponse struct {
	generator.Result
	Favorited    map[string]bool `json:"favorited"`
	HistorySaved bool            `json:"historySaved"`
}

type featuredResponse struct {
	Featured []generator.FeaturedCard `json:"featured"`
}

// Generate runs one panel. The batch is still returned when only recording
// it in history failed.
func Generate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var criteria map[string]any
		if err := decodeBody(r, &criteria, true); err != nil {
			writeErr(w, d.Logger, err)
			return
		}

		store := collectionFor(d, r)
		typ := chi.URLParam(r, "type")

		res, err := d.Generator.Generate(r.Context(), store, typ, plainNumbers(criteria))
		saved := err == nil
		if err != nil {
			if !errors.Is(err, collection.ErrWriteFailed) || res.Type == "" {
				writeErr(w, d.Logger, err)
				return
			}
			d.Logger.Warn("batch not recorded in history",
				logger.String("type", typ),
				logger.Error(err))
		}

		fav := make(map[string]bool, len(res.Names))
		for _, n := range res.Names {
			fav[n] = store.IsFavorited(r.Context(), n)
		}
		if res.Names == nil {
			res.Names = []string{}
		}

		writeJSON(w, http.StatusOK, generateResponse{Result: res, Favorited: fav, HistorySaved: saved && len(res.Names) > 0})
	}
}

func Featured(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, featuredResponse{
			Featured: d.Generator.Featured(r.Context(), collectionFor(d, r)),
		})
	}
}

type typesResponse struct {
	Types []string `json:"types"`
}

func GeneratorTypes(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, typesResponse{Types: generator.Types()})
	}
}
