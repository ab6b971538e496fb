package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
)

type favoritesResponse struct {
	Favorites []domain.FavoriteEntry `json:"favorites"`
	Count     int                    `json:"count"`
}

type favoriteRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type favoriteStatus struct {
	Name      string `json:"name"`
	Favorited bool   `json:"favorited"`
}

func ListFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favs := collectionFor(d, r).ListFavorites(r.Context())
		writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favs, Count: len(favs)})
	}
}

func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req favoriteRequest
		if err := decodeBody(r, &req, false); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		// whitespace is kept as sent; comparisons trim it
		name := req.Name
		if strings.TrimSpace(name) == "" {
			writeError(w, http.StatusBadRequest, "missing_name", "name is required")
			return
		}

		if err := collectionFor(d, r).AddToFavorites(r.Context(), name, strings.TrimSpace(req.Type)); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, favoriteStatus{Name: name, Favorited: true})
	}
}

func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := nameParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "missing_name", "name is required")
			return
		}
		if err := collectionFor(d, r).RemoveFromFavorites(r.Context(), name); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ClearFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := collectionFor(d, r).ClearFavorites(r.Context()); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func IsFavorited(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := nameParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "missing_name", "name is required")
			return
		}
		writeJSON(w, http.StatusOK, favoriteStatus{
			Name:      name,
			Favorited: collectionFor(d, r).IsFavorited(r.Context(), name),
		})
	}
}

func nameParam(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}
