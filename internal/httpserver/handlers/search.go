package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/query"
)

type searchResponse struct {
	Query     string   `json:"query"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Names     []string `json:"names"`
	Count     int      `json:"count"`
}

// Search filters the catalog corpus by ?q=, ?min= and ?max=. Missing or zero
// bounds leave that side unbounded.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		minLen, err := boundParam(q.Get("min"), "min")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_value", err.Error())
			return
		}
		maxLen, err := boundParam(q.Get("max"), "max")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_value", err.Error())
			return
		}

		term := q.Get("q")
		lo, hi := query.Bounds(minLen, maxLen)
		names := query.FilterByLength(query.Search(d.MemoryIndex.AllNames(), term), lo, hi)
		if names == nil {
			names = []string{}
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Query:     term,
			MinLength: lo,
			MaxLength: hi,
			Names:     names,
			Count:     len(names),
		})
	}
}

func boundParam(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}
