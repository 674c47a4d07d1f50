package server

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/playperu/charquest/internal/database"
	"github.com/playperu/charquest/internal/hunt"
	"github.com/playperu/charquest/internal/migrations"
)

func TestSeedDemoIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()
	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	store := hunt.NewStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := SeedDemo(ctx, logger, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cards, err := store.Cards(ctx)
	if err != nil {
		t.Fatalf("cards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("cards = %d, want 3", len(cards))
	}
	for _, c := range cards {
		if ok, missing := hunt.ValidateCard(c); !ok {
			t.Errorf("seeded card %s invalid, missing %v", c.ID, missing)
		}
	}

	teams, err := store.Teams(ctx)
	if err != nil {
		t.Fatalf("teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("teams = %d, want 2", len(teams))
	}

	// Second seed must not duplicate anything.
	if err := SeedDemo(ctx, logger, store); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	cards, _ = store.Cards(ctx)
	if len(cards) != 3 {
		t.Errorf("cards after reseed = %d, want 3", len(cards))
	}
}
