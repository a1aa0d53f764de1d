package history

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts history endpoints under /api/history.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/history", func(r chi.Router) {
		r.Get("/", handleRecent(store))
		r.Get("/{section}", handleBySection(store))
	})
}

func handleRecent(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.Recent(r.Context(), limitParam(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleBySection(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section := chi.URLParam(r, "section")
		entries, err := store.BySection(r.Context(), section, limitParam(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func limitParam(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
