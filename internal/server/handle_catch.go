package server

import (
	"errors"
	"net/http"

	"github.com/playperu/charquest/internal/hunt"
)

type CatchRequest struct {
	CardID string `json:"cardId"`
	TeamID string `json:"teamId"`
	Value  int    `json:"value"`
}

func handleCatch(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CatchRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.CardID == "" || req.TeamID == "" {
			writeError(w, http.StatusBadRequest, "cardId and teamId are required")
			return
		}
		if req.Value < 1 {
			writeError(w, http.StatusBadRequest, "value must be positive")
			return
		}

		res, err := store.AttemptCatch(r.Context(), req.CardID, req.TeamID, req.Value)
		switch {
		case errors.Is(err, hunt.ErrNotFound):
			writeError(w, http.StatusNotFound, "card or team not found")
			return
		case errors.Is(err, hunt.ErrTransient):
			// No writes were applied; the client can simply retry.
			writeError(w, http.StatusServiceUnavailable, "store contention, try again")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		// AlreadyCaught is a 200: a valid outcome carrying the winner.
		writeJSON(w, http.StatusOK, res)
	}
}
