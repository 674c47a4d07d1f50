package hunt

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestNextIDRequiresSetup(t *testing.T) {
	s := newTestStore(t)

	_, err := s.NextID(context.Background(), CollectionTeams, PrefixTeam)
	if !errors.Is(err, ErrSetupRequired) {
		t.Fatalf("err = %v, want ErrSetupRequired", err)
	}
}

func TestNextIDUnknownPrefix(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.NextID(context.Background(), CollectionCards, "x9"); err == nil {
		t.Fatal("expected error for unknown prefix")
	}
}

func TestSetupCountersIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.SetupCounters(ctx)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if len(created) != 4 {
		t.Fatalf("created = %v, want all four counters", created)
	}

	// Allocate a few so a second setup would be destructive if it reset.
	if _, err := s.NextID(ctx, CollectionTeams, PrefixTeam); err != nil {
		t.Fatalf("next id: %v", err)
	}

	created, err = s.SetupCounters(ctx)
	if err != nil {
		t.Fatalf("second setup: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("second setup created %v, want none", created)
	}

	var c Counter
	if err := s.Get(ctx, CollectionCounters, CounterTeams, &c); err != nil {
		t.Fatalf("get counter: %v", err)
	}
	if c.Count != 1 {
		t.Errorf("count = %d, want 1 (setup must not reset)", c.Count)
	}
}

func TestNextIDSequenceAndPadding(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.SetupCounters(ctx); err != nil {
		t.Fatalf("setup: %v", err)
	}

	for i, want := range []string{"team_001", "team_002", "team_003"} {
		got, err := s.NextID(ctx, CollectionTeams, PrefixTeam)
		if err != nil {
			t.Fatalf("next id %d: %v", i, err)
		}
		if got != want {
			t.Errorf("id %d = %q, want %q", i, got, want)
		}
	}

	// Card counters are independent per tier, width 2.
	for _, want := range []string{"c101", "c102"} {
		got, err := s.NextID(ctx, CollectionCards, PrefixCardLegendary)
		if err != nil {
			t.Fatalf("next card id: %v", err)
		}
		if got != want {
			t.Errorf("card id = %q, want %q", got, want)
		}
	}
	got, err := s.NextID(ctx, CollectionCards, PrefixCardCommon)
	if err != nil {
		t.Fatalf("next common id: %v", err)
	}
	if got != "c301" {
		t.Errorf("common id = %q, want c301", got)
	}
}

func TestNextIDConcurrentUniqueness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 1000-allocation test in short mode")
	}

	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.SetupCounters(ctx); err != nil {
		t.Fatalf("setup: %v", err)
	}

	const n = 1000
	ids := make(chan string, n)

	var g errgroup.Group
	g.SetLimit(32)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			id, err := s.NextID(ctx, CollectionCards, PrefixCardLegendary)
			if err != nil {
				return err
			}
			ids <- id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent allocation: %v", err)
	}
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("distinct ids = %d, want %d", len(seen), n)
	}

	var c Counter
	if err := s.Get(ctx, CollectionCounters, CounterCardsLegendary, &c); err != nil {
		t.Fatalf("get counter: %v", err)
	}
	if c.Count != n {
		t.Errorf("counter = %d, want %d", c.Count, n)
	}
}
