package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/charquest/internal/hunt"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func handleHealth(logger *slog.Logger, store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "error"})
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
