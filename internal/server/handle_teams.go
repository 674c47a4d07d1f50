package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/charquest/internal/hunt"
)

type CreateTeamRequest struct {
	TeamName string `json:"teamName"`
}

// handleListTeams returns the leaderboard: all teams, score descending.
func handleListTeams(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := store.Teams(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

func handleListTeamCards(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")

		var team hunt.Team
		if err := store.Get(r.Context(), hunt.CollectionTeams, teamID, &team); err != nil {
			if errors.Is(err, hunt.ErrNotFound) {
				writeError(w, http.StatusNotFound, "team not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		cards, err := store.CardsCaughtBy(r.Context(), teamID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, cards)
	}
}

func handleAdminCreateTeam(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTeamRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.TeamName = strings.TrimSpace(req.TeamName)
		if req.TeamName == "" {
			writeError(w, http.StatusBadRequest, "teamName is required")
			return
		}

		id, err := store.NextID(r.Context(), hunt.CollectionTeams, hunt.PrefixTeam)
		if err != nil {
			if errors.Is(err, hunt.ErrSetupRequired) {
				writeError(w, http.StatusConflict, "counters not initialized, run setup first")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		team := hunt.Team{
			ID:          id,
			TeamName:    req.TeamName,
			Score:       0,
			CardsCaught: []string{},
		}
		if err := store.Set(r.Context(), hunt.CollectionTeams, team.ID, team); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, team)
	}
}

func handleAdminDeleteTeam(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := chi.URLParam(r, "teamID")

		err := store.Delete(r.Context(), hunt.CollectionTeams, teamID)
		if errors.Is(err, hunt.ErrNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
