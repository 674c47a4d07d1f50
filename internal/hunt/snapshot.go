package hunt

import (
	"context"
	"fmt"
	"time"
)

// UndoWindow is how long a snapshot stays restorable after creation.
const UndoWindow = 5 * time.Minute

// Snapshot captures the full team and card collections before a reset
// so the reset can be undone. A snapshot is single-use and only valid
// within UndoWindow of its timestamp.
type Snapshot struct {
	Teams     []Team    `json:"teams"`
	Cards     []Card    `json:"cards"`
	Timestamp time.Time `json:"timestamp"`
}

// Expired reports whether the snapshot is outside the undo window.
func (sn *Snapshot) Expired(now time.Time) bool {
	return now.Sub(sn.Timestamp) > UndoWindow
}

// ExpiresAt is when the snapshot stops being restorable.
func (sn *Snapshot) ExpiresAt() time.Time {
	return sn.Timestamp.Add(UndoWindow)
}

// CreateSnapshot bulk-reads both collections. The read is not a single
// transaction; this is an admin-triggered, low-frequency operation and
// a catch landing mid-read is an accepted risk.
func (s *Store) CreateSnapshot(ctx context.Context) (*Snapshot, error) {
	teams, err := s.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading teams: %w", err)
	}
	cards, err := s.Cards(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading cards: %w", err)
	}
	return &Snapshot{Teams: teams, Cards: cards, Timestamp: time.Now()}, nil
}

// Reset returns every card to unclaimed and every team to zero score
// with an empty caught set. Callers must take a fresh snapshot first if
// they want an undo path; Reset does not chain the two itself. Each
// document update is atomic but the sweep as a whole is not; a crash
// mid-reset leaves a partially reset game, accepted for this rare
// admin-only operation.
func (s *Store) Reset(ctx context.Context) error {
	cards, err := s.Cards(ctx)
	if err != nil {
		return fmt.Errorf("reading cards: %w", err)
	}
	for _, c := range cards {
		c.IsCaught = false
		c.CaughtByTeam = ""
		if err := s.Set(ctx, CollectionCards, c.ID, c); err != nil {
			return fmt.Errorf("resetting card %s: %w", c.ID, err)
		}
	}

	teams, err := s.Teams(ctx)
	if err != nil {
		return fmt.Errorf("reading teams: %w", err)
	}
	for _, t := range teams {
		t.Score = 0
		t.CardsCaught = []string{}
		if err := s.Set(ctx, CollectionTeams, t.ID, t); err != nil {
			return fmt.Errorf("resetting team %s: %w", t.ID, err)
		}
	}
	return nil
}

// Restore overwrites every team and card document with the snapshot's
// exact state (full replace, not merge). It fails with ErrExpiredUndo
// before touching anything if the snapshot is outside the undo window.
// Catches committed after the snapshot was taken are clobbered; the
// known cost of a single-slot, time-boxed undo.
func (s *Store) Restore(ctx context.Context, sn *Snapshot) error {
	if sn.Expired(time.Now()) {
		return ErrExpiredUndo
	}

	for _, t := range sn.Teams {
		if err := s.Set(ctx, CollectionTeams, t.ID, t); err != nil {
			return fmt.Errorf("restoring team %s: %w", t.ID, err)
		}
	}
	for _, c := range sn.Cards {
		if err := s.Set(ctx, CollectionCards, c.ID, c); err != nil {
			return fmt.Errorf("restoring card %s: %w", c.ID, err)
		}
	}
	return nil
}
