package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playperu/charquest/internal/hunt"
)

// SeedDemo initializes counters and creates a small demo game if the
// store holds no cards yet. Idempotent: does nothing on a non-empty
// store.
func SeedDemo(ctx context.Context, logger *slog.Logger, store *hunt.Store) error {
	existing, err := store.Cards(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	if _, err := store.SetupCounters(ctx); err != nil {
		return fmt.Errorf("setting up counters: %w", err)
	}

	for _, name := range []string{"Rockets", "Comets"} {
		id, err := store.NextID(ctx, hunt.CollectionTeams, hunt.PrefixTeam)
		if err != nil {
			return fmt.Errorf("allocating team id: %w", err)
		}
		team := hunt.Team{ID: id, TeamName: name, Score: 0, CardsCaught: []string{}}
		if err := store.Set(ctx, hunt.CollectionTeams, id, team); err != nil {
			return fmt.Errorf("seeding team %s: %w", name, err)
		}
	}

	demos := []hunt.Card{
		{
			Name:          "Emberwing",
			Question:      "What does Emberwing breathe?",
			Options:       []string{"Water", "Fire", "Sand"},
			CorrectAnswer: 1,
			Image:         "🐉",
			Value:         50,
		},
		{
			Name:          "Moonwisp",
			Question:      "When does Moonwisp appear?",
			Options:       []string{"At noon", "At night"},
			CorrectAnswer: 1,
			Image:         "🌙",
			Value:         20,
		},
		{
			Name:          "Pebblit",
			Question:      "What is Pebblit made of?",
			Options:       []string{"Stone", "Cloud", "Glass"},
			CorrectAnswer: 0,
			Image:         "🪨",
			Value:         8,
		},
	}
	for _, card := range demos {
		id, err := store.NextID(ctx, hunt.CollectionCards, hunt.PrefixForValue(card.Value))
		if err != nil {
			return fmt.Errorf("allocating card id: %w", err)
		}
		card.ID = id
		if err := store.Set(ctx, hunt.CollectionCards, id, card); err != nil {
			return fmt.Errorf("seeding card %s: %w", card.Name, err)
		}
	}

	logger.Info("demo game seeded", "teams", 2, "cards", len(demos))
	return nil
}
