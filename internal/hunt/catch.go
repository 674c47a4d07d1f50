package hunt

import (
	"context"
	"fmt"
)

// CatchResult is the outcome of one claim on a card. AlreadyCaught is a
// valid outcome, not an error: the card was claimed first by
// CaughtByTeam and the caller should refresh its view.
type CatchResult struct {
	Success       bool   `json:"success"`
	AlreadyCaught bool   `json:"alreadyCaught,omitempty"`
	CaughtByTeam  string `json:"caughtByTeam,omitempty"`
}

// AttemptCatch resolves a team's claim on a card. The card is re-read
// inside the transaction rather than trusted from a client cache, so
// under concurrent claims on the same card exactly one transaction observes
// it unclaimed and commits; every other claim sees the committed owner
// and returns AlreadyCaught with zero writes.
//
// On success the card's ownership and the team's score/caught set are
// written in the same transaction: both land or neither does. The
// stored card decides availability; value is only the score increment.
func (s *Store) AttemptCatch(ctx context.Context, cardID, teamID string, value int) (CatchResult, error) {
	var res CatchResult
	err := s.RunTransaction(ctx, func(tx *Tx) error {
		var card Card
		if err := tx.Get(ctx, CollectionCards, cardID, &card); err != nil {
			return fmt.Errorf("card %s: %w", cardID, err)
		}

		if card.IsCaught {
			res = CatchResult{AlreadyCaught: true, CaughtByTeam: card.CaughtByTeam}
			return nil
		}

		var team Team
		if err := tx.Get(ctx, CollectionTeams, teamID, &team); err != nil {
			return fmt.Errorf("team %s: %w", teamID, err)
		}

		card.IsCaught = true
		card.CaughtByTeam = teamID
		team.CardsCaught = append(team.CardsCaught, cardID)
		team.Score += value

		if err := tx.Set(ctx, CollectionCards, cardID, card); err != nil {
			return err
		}
		if err := tx.Set(ctx, CollectionTeams, teamID, team); err != nil {
			return err
		}

		res = CatchResult{Success: true}
		return nil
	})
	if err != nil {
		return CatchResult{}, err
	}
	return res, nil
}
