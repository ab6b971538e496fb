package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/namax/internal/httpserver/deps"
	"github.com/MrSnakeDoc/namax/internal/store"
)

const storePingTimeout = 2 * time.Second

type componentStatus struct {
	OK         bool   `json:"ok"`
	NamesCount *int   `json:"names_loaded,omitempty"`
	Sessions   *int   `json:"sessions,omitempty"`
	Clients    *int   `json:"clients,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Source     string `json:"source,omitempty"`
	Backend    string `json:"backend,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.Count()
		lastReload := "never"
		if t := d.MemoryIndex.GetLastReload(); !t.IsZero() {
			lastReload = t.Format(time.RFC3339)
		}

		sessions := d.Filters.Len()
		components := map[string]componentStatus{
			"catalog": {
				OK:         count > 0,
				NamesCount: &count,
				LastReload: lastReload,
				Source:     d.MemoryIndex.Source(),
			},
			"store": storeDetails(r.Context(), d),
			"filter_sessions": {
				OK:       true,
				Sessions: &sessions,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical" // nothing to generate or search
	}
	if s, ok := components["store"]; ok && !s.OK {
		return "degraded" // names still served, nothing is saved
	}
	return "operational"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	st := componentStatus{Backend: d.StoreBackend}
	if d.Store == nil {
		st.OK = true
		st.Impact = "collections-not-persisted"
		return st
	}

	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		st.Impact = "collections-read-only-empty"
		st.Error = err.Error()
		return st
	}
	st.OK = true
	return st
}

// storeDetails adds the client count to a healthy store status.
func storeDetails(ctx context.Context, d deps.Deps) componentStatus {
	st := checkStore(ctx, d)
	if !st.OK {
		return st
	}

	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	if counter, ok := d.Store.(store.ClientCounter); ok {
		if n, err := counter.CountClients(ctx); err == nil {
			st.Clients = &n
		}
	}
	return st
}
