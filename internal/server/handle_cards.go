package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"github.com/playperu/charquest/internal/hunt"
)

type CardRequest struct {
	Name          string   `json:"name"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Image         string   `json:"image"`
	ModelURL      string   `json:"modelUrl"`
	Value         int      `json:"value"`
}

// CharactersResponse is the AR feed. Skipped counts records that failed
// validation and were excluded rather than silently defaulted.
type CharactersResponse struct {
	Characters []hunt.Card `json:"characters"`
	Skipped    int         `json:"skipped"`
}

func (req *CardRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Question = strings.TrimSpace(req.Question)
	for i, opt := range req.Options {
		req.Options[i] = strings.TrimSpace(opt)
	}

	if req.Name == "" {
		return "name is required"
	}
	if req.Question == "" {
		return "question is required"
	}
	if len(req.Options) == 0 {
		return "at least one option is required"
	}
	for _, opt := range req.Options {
		if opt == "" {
			return "all options must be filled"
		}
	}
	if req.CorrectAnswer < 0 || req.CorrectAnswer >= len(req.Options) {
		return "correctAnswer must index an option"
	}
	if req.Value < 1 {
		return "value must be positive"
	}
	return ""
}

func handleListUncaughtCards(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := store.UncaughtCards(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, cards)
	}
}

// handleCharacters serves the AR detector feed: every card that passes
// validation, caught or not, so the client can render caught state.
func handleCharacters(logger *slog.Logger, store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := store.Cards(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := CharactersResponse{Characters: []hunt.Card{}}
		for _, c := range cards {
			ok, missing := hunt.ValidateCard(c)
			if !ok {
				logger.Warn("skipping malformed character",
					"id", c.ID, "missing", strings.Join(missing, ","))
				resp.Skipped++
				continue
			}
			resp.Characters = append(resp.Characters, c)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleAdminCreateCard(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CardRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		// The id prefix follows the value tier at creation time.
		prefix := hunt.PrefixForValue(req.Value)
		id, err := store.NextID(r.Context(), hunt.CollectionCards, prefix)
		if err != nil {
			if errors.Is(err, hunt.ErrSetupRequired) {
				writeError(w, http.StatusConflict, "counters not initialized, run setup first")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		card := hunt.Card{
			ID:            id,
			Name:          req.Name,
			Question:      req.Question,
			Options:       req.Options,
			CorrectAnswer: req.CorrectAnswer,
			Image:         req.Image,
			ModelURL:      req.ModelURL,
			Value:         req.Value,
			IsCaught:      false,
			CaughtByTeam:  "",
		}
		if err := store.Set(r.Context(), hunt.CollectionCards, card.ID, card); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, card)
	}
}

// handleAdminUpdateCard edits a card's content. The id and caught state
// are preserved; editing never releases or reassigns ownership.
func handleAdminUpdateCard(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID := chi.URLParam(r, "cardID")

		var req CardRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		var card hunt.Card
		if err := store.Get(r.Context(), hunt.CollectionCards, cardID, &card); err != nil {
			if errors.Is(err, hunt.ErrNotFound) {
				writeError(w, http.StatusNotFound, "card not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		card.Name = req.Name
		card.Question = req.Question
		card.Options = req.Options
		card.CorrectAnswer = req.CorrectAnswer
		card.Image = req.Image
		card.ModelURL = req.ModelURL
		card.Value = req.Value

		if err := store.Set(r.Context(), hunt.CollectionCards, card.ID, card); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func handleAdminDeleteCard(store *hunt.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID := chi.URLParam(r, "cardID")

		err := store.Delete(r.Context(), hunt.CollectionCards, cardID)
		if errors.Is(err, hunt.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAdminCardMarker renders a printable QR marker for the card,
// encoding the hunt URL the AR client opens when scanned.
func handleAdminCardMarker(store *hunt.Store, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID := chi.URLParam(r, "cardID")

		var card hunt.Card
		if err := store.Get(r.Context(), hunt.CollectionCards, cardID, &card); err != nil {
			if errors.Is(err, hunt.ErrNotFound) {
				writeError(w, http.StatusNotFound, "card not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		huntURL := fmt.Sprintf("%s/hunt?character=%s", publicURL, url.QueryEscape(card.ID))
		png, err := qrcode.Encode(huntURL, qrcode.Medium, 256)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}
