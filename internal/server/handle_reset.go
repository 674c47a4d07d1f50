package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/playperu/charquest/internal/hunt"
)

type ResetResponse struct {
	TeamsReset    int       `json:"teamsReset"`
	CardsReset    int       `json:"cardsReset"`
	UndoExpiresAt time.Time `json:"undoExpiresAt"`
}

// handleAdminReset snapshots both collections into the session's undo
// slot, then clears every catch and every score. The snapshot always
// precedes the reset so an undo path exists.
func handleAdminReset(logger *slog.Logger, store *hunt.Store, admin *AdminSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sn, err := store.CreateSnapshot(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		admin.SetUndo(adminSessionID(r), sn)

		if err := store.Reset(r.Context()); err != nil {
			logger.Error("reset failed", "error", err)
			writeError(w, http.StatusInternalServerError, "reset failed, snapshot retained for undo")
			return
		}

		logger.Info("game reset", "teams", len(sn.Teams), "cards", len(sn.Cards))
		writeJSON(w, http.StatusOK, ResetResponse{
			TeamsReset:    len(sn.Teams),
			CardsReset:    len(sn.Cards),
			UndoExpiresAt: sn.ExpiresAt(),
		})
	}
}

// handleAdminUndo restores the snapshot from the session's undo slot.
// The slot is single-use: taken on entry, never put back.
func handleAdminUndo(logger *slog.Logger, store *hunt.Store, admin *AdminSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sn, ok := admin.TakeUndo(adminSessionID(r))
		if !ok {
			writeError(w, http.StatusConflict, "nothing to undo")
			return
		}

		err := store.Restore(r.Context(), sn)
		if errors.Is(err, hunt.ErrExpiredUndo) {
			writeError(w, http.StatusGone, "undo window expired, reset can no longer be reversed")
			return
		}
		if err != nil {
			logger.Error("restore failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("reset undone", "teams", len(sn.Teams), "cards", len(sn.Cards))
		w.WriteHeader(http.StatusOK)
	}
}
