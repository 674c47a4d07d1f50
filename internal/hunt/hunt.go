// Package hunt implements the character-hunting game core: the document
// store, the transactional catch-resolution protocol, sequential id
// allocation, and the snapshot/restore undo path for admin resets.
package hunt

// Team is a playing team. Score is kept equal to the sum of the values
// of all cards whose caughtByTeam is this team's id; both are only ever
// updated together inside a catch transaction.
type Team struct {
	ID          string   `json:"id"`
	TeamName    string   `json:"teamName"`
	Score       int      `json:"score"`
	CardsCaught []string `json:"cardsCaught"`
}

// Card is a huntable character with its quiz. CaughtByTeam is empty
// while the card is unclaimed; IsCaught is true iff it is non-empty.
type Card struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Image         string   `json:"image,omitempty"`
	ModelURL      string   `json:"modelUrl,omitempty"`
	Value         int      `json:"value"`
	IsCaught      bool     `json:"isCaught"`
	CaughtByTeam  string   `json:"caughtByTeam"`
}

// Counter backs the sequential id allocator, one per (collection, tier).
type Counter struct {
	Count int `json:"count"`
}

type Tier string

const (
	TierLegendary Tier = "Legendary"
	TierRare      Tier = "Rare"
	TierCommon    Tier = "Common"
)

// TierForValue is the single source of truth for tier derivation.
// Id prefixes (c1/c2/c3) are allocation metadata, not a tier oracle.
func TierForValue(value int) Tier {
	switch {
	case value >= 50:
		return TierLegendary
	case value >= 20:
		return TierRare
	default:
		return TierCommon
	}
}

// Tier derives the card's tier from its value.
func (c Card) Tier() Tier {
	return TierForValue(c.Value)
}

// ValidateCard checks that a card has every field the AR feed requires.
// Malformed records are flagged and skipped by consumers, never
// silently defaulted. Returns the names of any missing or invalid
// fields.
func ValidateCard(c Card) (ok bool, missing []string) {
	if c.ID == "" {
		missing = append(missing, "id")
	}
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Question == "" {
		missing = append(missing, "question")
	}
	if len(c.Options) == 0 {
		missing = append(missing, "options")
	}
	if c.CorrectAnswer < 0 || (len(c.Options) > 0 && c.CorrectAnswer >= len(c.Options)) {
		missing = append(missing, "correctAnswer")
	}
	if c.Value < 1 {
		missing = append(missing, "value")
	}
	return len(missing) == 0, missing
}
