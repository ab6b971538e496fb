package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
)

type historyResponse struct {
	History []domain.HistoryEntry `json:"history"`
	Count   int                   `json:"count"`
}

func ListHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hist := collectionFor(d, r).ListHistory(r.Context())
		writeJSON(w, http.StatusOK, historyResponse{History: hist, Count: len(hist)})
	}
}

func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := collectionFor(d, r).ClearHistory(r.Context()); err != nil {
			writeErr(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
