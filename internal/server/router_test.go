package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/charquest/internal/database"
	"github.com/playperu/charquest/internal/hunt"
	"github.com/playperu/charquest/internal/migrations"
)

const testAdminPassword = "changeme"

func testRouter(t *testing.T) (*chi.Mux, *hunt.Store, func() []*http.Cookie) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	store := hunt.NewStore(db)

	admin, err := NewAdminSessions(testAdminPassword)
	if err != nil {
		t.Fatalf("init admin sessions: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	addRoutes(r, logger, store, admin, Options{PublicURL: "http://localhost:8080"})

	// Login helper that returns cookies.
	login := func() []*http.Cookie {
		body, _ := json.Marshal(AdminLoginRequest{Password: testAdminPassword})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
		}
		return w.Result().Cookies()
	}

	return r, store, login
}

func doJSON(t *testing.T, r *chi.Mux, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedTestGame(t *testing.T, store *hunt.Store) {
	t.Helper()
	ctx := context.Background()

	for _, team := range []hunt.Team{
		{ID: "team_001", TeamName: "Rockets", Score: 0, CardsCaught: []string{}},
		{ID: "team_002", TeamName: "Comets", Score: 0, CardsCaught: []string{}},
	} {
		if err := store.Set(ctx, hunt.CollectionTeams, team.ID, team); err != nil {
			t.Fatalf("seed team: %v", err)
		}
	}
	for _, card := range []hunt.Card{
		{ID: "c101", Name: "Emberwing", Question: "?", Options: []string{"a", "b"}, CorrectAnswer: 0, Value: 50},
		{ID: "c301", Name: "Pebblit", Question: "?", Options: []string{"a"}, CorrectAnswer: 0, Value: 8},
	} {
		if err := store.Set(ctx, hunt.CollectionCards, card.ID, card); err != nil {
			t.Fatalf("seed card: %v", err)
		}
	}
}
