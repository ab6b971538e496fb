package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/filterbar"
	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/httpserver/mw"
)

type activeFilter struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type filtersResponse struct {
	Filters domain.SearchFilters `json:"filters"`
	Active  []activeFilter       `json:"active"`
	State   filterbar.State      `json:"state"`
}

type filterResultsResponse struct {
	Filters   domain.SearchFilters `json:"filters"`
	Names     []string             `json:"names"`
	Count     int                  `json:"count"`
	UpdatedAt *time.Time           `json:"updatedAt,omitempty"`
}

func session(d deps.Deps, r *http.Request) *filterbar.Session {
	return d.Filters.Get(r.Context(), mw.ClientID(r.Context()))
}

func filtersView(s *filterbar.Session) filtersResponse {
	keys := s.ActiveFilters()
	active := make([]activeFilter, 0, len(keys))
	for _, k := range keys {
		active = append(active, activeFilter{Key: k, Text: s.DisplayText(k)})
	}
	return filtersResponse{Filters: s.Filters(), Active: active, State: s.State()}
}

func GetFilters(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, filtersView(session(d, r)))
	}
}

// UpdateFilters applies every field of the request object. Results follow
// once the input has been quiet for the debounce delay.
func UpdateFilters(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var values map[string]any
		if err := decodeBody(r, &values, false); err != nil {
			writeErr(w, d.Logger, err)
			return
		}

		s := session(d, r)
		if err := s.UpdateFilters(values); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusAccepted, filtersView(s))
	}
}

func RemoveFilter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(d, r)
		if err := s.RemoveFilter(chi.URLParam(r, "key")); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusAccepted, filtersView(s))
	}
}

func ClearFilters(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session(d, r)
		s.ClearAll()
		writeJSON(w, http.StatusOK, filtersView(s))
	}
}

func FilterResults(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, names, updated := session(d, r).Results.Snapshot()
		if names == nil {
			names = []string{}
		}
		resp := filterResultsResponse{Filters: filters, Names: names, Count: len(names)}
		if !updated.IsZero() {
			resp.UpdatedAt = &updated
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
