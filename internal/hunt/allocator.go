package hunt

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Counter document ids, one per (collection, tier). They must exist
// before allocation; SetupCounters creates them.
const (
	CounterTeams          = "teamsCounter"
	CounterCardsLegendary = "cardsLegendaryCounter"
	CounterCardsRare      = "cardsRareCounter"
	CounterCardsCommon    = "cardsCommonCounter"
)

// PrefixTeam and the card tier prefixes are allocation metadata only;
// tier itself is always derived from value (TierForValue).
const (
	PrefixTeam          = "team_"
	PrefixCardLegendary = "c1"
	PrefixCardRare      = "c2"
	PrefixCardCommon    = "c3"
)

// PrefixForValue maps a card value to its allocation prefix.
func PrefixForValue(value int) string {
	switch TierForValue(value) {
	case TierLegendary:
		return PrefixCardLegendary
	case TierRare:
		return PrefixCardRare
	default:
		return PrefixCardCommon
	}
}

type counterSpec struct {
	counter string
	width   int
}

// Padding width is fixed per counter: 3 digits for team ids (team_001),
// 2 for tier-prefixed card ids (c101).
var counterSpecs = map[string]counterSpec{
	CollectionTeams + "/" + PrefixTeam:          {CounterTeams, 3},
	CollectionCards + "/" + PrefixCardLegendary: {CounterCardsLegendary, 2},
	CollectionCards + "/" + PrefixCardRare:      {CounterCardsRare, 2},
	CollectionCards + "/" + PrefixCardCommon:    {CounterCardsCommon, 2},
}

// NextID atomically increments the counter for (collection, prefix) and
// returns the prefixed, zero-padded id. No two calls against the same
// counter ever return the same id; the counter read-modify-write runs
// in a transaction. A missing counter fails with ErrSetupRequired and
// performs no write.
func (s *Store) NextID(ctx context.Context, collection, prefix string) (string, error) {
	spec, ok := counterSpecs[collection+"/"+prefix]
	if !ok {
		return "", fmt.Errorf("no counter for collection %q prefix %q", collection, prefix)
	}

	var id string
	err := s.RunTransaction(ctx, func(tx *Tx) error {
		var c Counter
		if err := tx.Get(ctx, CollectionCounters, spec.counter, &c); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("counter %s: %w", spec.counter, ErrSetupRequired)
			}
			return err
		}

		c.Count++
		if err := tx.Set(ctx, CollectionCounters, spec.counter, c); err != nil {
			return err
		}

		id = fmt.Sprintf("%s%0*d", prefix, spec.width, c.Count)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// SetupCounters creates every missing counter at count 0 and returns
// the ids it created. Idempotent: counters that already exist are left
// untouched.
func (s *Store) SetupCounters(ctx context.Context) ([]string, error) {
	created := []string{}
	err := s.RunTransaction(ctx, func(tx *Tx) error {
		created = created[:0]
		for _, name := range allCounters() {
			var c Counter
			err := tx.Get(ctx, CollectionCounters, name, &c)
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrNotFound) {
				return err
			}
			if err := tx.Set(ctx, CollectionCounters, name, Counter{Count: 0}); err != nil {
				return err
			}
			created = append(created, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CounterStatus reports which counters exist.
func (s *Store) CounterStatus(ctx context.Context) (map[string]bool, error) {
	status := make(map[string]bool, len(counterSpecs))
	for _, name := range allCounters() {
		var c Counter
		err := s.Get(ctx, CollectionCounters, name, &c)
		switch {
		case err == nil:
			status[name] = true
		case errors.Is(err, ErrNotFound):
			status[name] = false
		default:
			return nil, err
		}
	}
	return status, nil
}

func allCounters() []string {
	names := make([]string, 0, len(counterSpecs))
	for _, spec := range counterSpecs {
		names = append(names, spec.counter)
	}
	sort.Strings(names)
	return names
}
