package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports ready once a catalog is loaded and the collection backend
// answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MemoryIndex == nil || d.MemoryIndex.Count() == 0 {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "catalog not loaded"})
			return
		}
		if st := checkStore(r.Context(), d); !st.OK {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "store unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
