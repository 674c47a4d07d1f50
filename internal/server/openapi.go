package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"

	"github.com/playperu/charquest/internal/hunt"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi31.Spec {
	r := openapi31.NewReflector()
	r.Spec.Info.Title = "CharQuest API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the CharQuest character-hunting game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the backend store.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/teams
	getTeams, _ := r.NewOperationContext(http.MethodGet, "/api/teams")
	getTeams.SetSummary("Leaderboard")
	getTeams.SetDescription("All teams sorted by score descending.")
	getTeams.AddRespStructure([]hunt.Team{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getTeams)

	// GET /api/teams/{teamID}/cards
	getTeamCards, _ := r.NewOperationContext(http.MethodGet, "/api/teams/{teamID}/cards")
	getTeamCards.SetSummary("Cards caught by team")
	getTeamCards.AddRespStructure([]hunt.Card{}, openapi.WithHTTPStatus(http.StatusOK))
	getTeamCards.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getTeamCards)

	// GET /api/cards/uncaught
	getUncaught, _ := r.NewOperationContext(http.MethodGet, "/api/cards/uncaught")
	getUncaught.SetSummary("Uncaught cards")
	getUncaught.SetDescription("Every card not yet claimed by a team.")
	getUncaught.AddRespStructure([]hunt.Card{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getUncaught)

	// GET /api/characters
	getCharacters, _ := r.NewOperationContext(http.MethodGet, "/api/characters")
	getCharacters.SetSummary("AR character feed")
	getCharacters.SetDescription("All valid characters for the AR detector; malformed records are skipped and counted.")
	getCharacters.AddRespStructure(CharactersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCharacters)

	// POST /api/catch
	postCatch, _ := r.NewOperationContext(http.MethodPost, "/api/catch")
	postCatch.SetSummary("Attempt a catch")
	postCatch.SetDescription("Atomically claim a card for a team. Exactly one of concurrent claims on the same card succeeds; the rest get alreadyCaught with the winner.")
	postCatch.AddReqStructure(CatchRequest{})
	postCatch.AddRespStructure(hunt.CatchResult{}, openapi.WithHTTPStatus(http.StatusOK))
	postCatch.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postCatch.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postCatch)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with the shared admin password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin session")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/setup
	getSetup, _ := r.NewOperationContext(http.MethodGet, "/api/admin/setup")
	getSetup.SetSummary("Counter status")
	getSetup.AddRespStructure(SetupStatusResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getSetup)

	// POST /api/admin/setup
	postSetup, _ := r.NewOperationContext(http.MethodPost, "/api/admin/setup")
	postSetup.SetSummary("Initialize counters")
	postSetup.SetDescription("Creates any missing allocation counters at zero. Idempotent.")
	postSetup.AddRespStructure(SetupResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postSetup)

	// POST /api/admin/teams
	postTeam, _ := r.NewOperationContext(http.MethodPost, "/api/admin/teams")
	postTeam.SetSummary("Create team")
	postTeam.AddReqStructure(CreateTeamRequest{})
	postTeam.AddRespStructure(hunt.Team{}, openapi.WithHTTPStatus(http.StatusCreated))
	postTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postTeam)

	// DELETE /api/admin/teams/{teamID}
	delTeam, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/teams/{teamID}")
	delTeam.SetSummary("Delete team")
	delTeam.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	delTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(delTeam)

	// POST /api/admin/cards
	postCard, _ := r.NewOperationContext(http.MethodPost, "/api/admin/cards")
	postCard.SetSummary("Create card")
	postCard.SetDescription("Creates a card with an id allocated from the value tier (c1/c2/c3).")
	postCard.AddReqStructure(CardRequest{})
	postCard.AddRespStructure(hunt.Card{}, openapi.WithHTTPStatus(http.StatusCreated))
	postCard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postCard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCard)

	// PUT /api/admin/cards/{cardID}
	putCard, _ := r.NewOperationContext(http.MethodPut, "/api/admin/cards/{cardID}")
	putCard.SetSummary("Update card")
	putCard.SetDescription("Edits card content. Id and caught state are preserved.")
	putCard.AddReqStructure(CardRequest{})
	putCard.AddRespStructure(hunt.Card{}, openapi.WithHTTPStatus(http.StatusOK))
	putCard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(putCard)

	// DELETE /api/admin/cards/{cardID}
	delCard, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/cards/{cardID}")
	delCard.SetSummary("Delete card")
	delCard.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	delCard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(delCard)

	// GET /api/admin/cards/{cardID}/marker
	getMarker, _ := r.NewOperationContext(http.MethodGet, "/api/admin/cards/{cardID}/marker")
	getMarker.SetSummary("Printable marker")
	getMarker.SetDescription("QR code PNG encoding the card's hunt URL, for printing.")
	getMarker.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("image/png"))
	getMarker.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getMarker)

	// POST /api/admin/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/admin/reset")
	postReset.SetSummary("Reset the game")
	postReset.SetDescription("Snapshots all teams and cards into the undo slot, then clears every catch and score.")
	postReset.AddRespStructure(ResetResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postReset)

	// POST /api/admin/undo
	postUndo, _ := r.NewOperationContext(http.MethodPost, "/api/admin/undo")
	postUndo.SetSummary("Undo the last reset")
	postUndo.SetDescription("Restores the snapshot taken by the last reset. Single-use, valid for five minutes.")
	postUndo.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postUndo.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postUndo.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusGone))
	_ = r.AddOperation(postUndo)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	var cached []byte

	return func(w http.ResponseWriter, r *http.Request) {
		if cached == nil {
			spec := newOpenAPISpec()
			data, err := json.MarshalIndent(spec, "", "  ")
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			cached = data
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
	}
}
