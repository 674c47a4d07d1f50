package server

import (
	"net/http"

	"github.com/playperu/charquest/internal/hunt"
)

type SetupResponse struct {
	Created []string `json:"created"`
}

type SetupStatusResponse struct {
	Counters map[string]bool `json:"counters"`
	Ready    bool            `json:"ready"`
}

// handleAdminSetup creates any missing allocation counters. Idempotent:
// calling it again creates nothing and resets nothing.
func handleAdminSetup(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created, err := store.SetupCounters(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, SetupResponse{Created: created})
	}
}

func handleAdminSetupStatus(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := store.CounterStatus(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		ready := true
		for _, exists := range status {
			if !exists {
				ready = false
			}
		}
		writeJSON(w, http.StatusOK, SetupStatusResponse{Counters: status, Ready: ready})
	}
}
