package hunt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/playperu/charquest/internal/database"
	"github.com/playperu/charquest/internal/migrations"
)

// newTestStore opens a file-backed database in a temp dir. File-backed
// rather than :memory: so concurrency tests exercise real SQLite
// locking across connections.
func newTestStore(t *testing.T) *Store {
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
	return NewStore(db)
}

func TestGetSetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	team := Team{ID: "team_001", TeamName: "Rockets", Score: 0, CardsCaught: []string{}}
	if err := s.Set(ctx, CollectionTeams, team.ID, team); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got Team
	if err := s.Get(ctx, CollectionTeams, "team_001", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TeamName != "Rockets" {
		t.Errorf("teamName = %q, want Rockets", got.TeamName)
	}

	// Set is a full replace, not a merge.
	if err := s.Set(ctx, CollectionTeams, team.ID, Team{ID: team.ID, TeamName: "Comets"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := s.Get(ctx, CollectionTeams, "team_001", &got); err != nil {
		t.Fatalf("get after replace: %v", err)
	}
	if got.TeamName != "Comets" || got.Score != 0 {
		t.Errorf("after replace got %+v", got)
	}

	if err := s.Delete(ctx, CollectionTeams, "team_001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Get(ctx, CollectionTeams, "team_001", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, CollectionTeams, "team_001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}
}

func TestTeamsSortedByScore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, team := range []Team{
		{ID: "team_001", TeamName: "Low", Score: 8, CardsCaught: []string{}},
		{ID: "team_002", TeamName: "High", Score: 70, CardsCaught: []string{}},
		{ID: "team_003", TeamName: "Mid", Score: 20, CardsCaught: []string{}},
	} {
		if err := s.Set(ctx, CollectionTeams, team.ID, team); err != nil {
			t.Fatalf("set %s: %v", team.ID, err)
		}
	}

	teams, err := s.Teams(ctx)
	if err != nil {
		t.Fatalf("teams: %v", err)
	}
	if len(teams) != 3 {
		t.Fatalf("len = %d, want 3", len(teams))
	}
	for i, want := range []string{"High", "Mid", "Low"} {
		if teams[i].TeamName != want {
			t.Errorf("teams[%d] = %q, want %q", i, teams[i].TeamName, want)
		}
	}
}

func TestCardQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cards := []Card{
		{ID: "c101", Name: "Drago", Value: 50, IsCaught: true, CaughtByTeam: "team_001"},
		{ID: "c201", Name: "Wisp", Value: 20, IsCaught: false, CaughtByTeam: ""},
		{ID: "c301", Name: "Pebble", Value: 8, IsCaught: true, CaughtByTeam: "team_002"},
	}
	for _, c := range cards {
		if err := s.Set(ctx, CollectionCards, c.ID, c); err != nil {
			t.Fatalf("set %s: %v", c.ID, err)
		}
	}

	uncaught, err := s.UncaughtCards(ctx)
	if err != nil {
		t.Fatalf("uncaught: %v", err)
	}
	if len(uncaught) != 1 || uncaught[0].ID != "c201" {
		t.Errorf("uncaught = %+v, want just c201", uncaught)
	}

	mine, err := s.CardsCaughtBy(ctx, "team_001")
	if err != nil {
		t.Fatalf("caught by: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "c101" {
		t.Errorf("caught by team_001 = %+v, want just c101", mine)
	}

	all, err := s.Cards(ctx)
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("cards len = %d, want 3", len(all))
	}
}

func TestRunTransactionRollback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.RunTransaction(ctx, func(tx *Tx) error {
		if err := tx.Set(ctx, CollectionTeams, "team_001", Team{ID: "team_001", TeamName: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	var got Team
	if err := s.Get(ctx, CollectionTeams, "team_001", &got); !errors.Is(err, ErrNotFound) {
		t.Errorf("write survived rollback: %v", err)
	}
}

func TestRunTransactionReadYourWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.RunTransaction(ctx, func(tx *Tx) error {
		if err := tx.Set(ctx, CollectionCounters, CounterTeams, Counter{Count: 7}); err != nil {
			return err
		}
		var c Counter
		if err := tx.Get(ctx, CollectionCounters, CounterTeams, &c); err != nil {
			return err
		}
		if c.Count != 7 {
			t.Errorf("read inside tx = %d, want 7", c.Count)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}
