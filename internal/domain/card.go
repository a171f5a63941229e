package domain

import (
	"math"

	"github.com/google/uuid"
)

// Card count limits for a generated deck.
const (
	MinCards     = 5
	MaxCards     = 20
	DefaultCards = 10
)

// Card text caps applied at generation time. Imported cards are not capped.
const (
	MaxFrontLen = 240
	MaxBackLen  = 480
)

// DecksKey is the storage key of the saved deck collection.
const DecksKey = "ft_saved_decks_v1"

// Card is a single question/answer flashcard.
type Card struct {
	ID    string `json:"id"    yaml:"id"`
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back"  yaml:"back"`
}

// SavedDeck is a deck with persisted identity.
// CreatedAt is an epoch-millisecond timestamp.
type SavedDeck struct {
	ID        string `json:"id"        yaml:"id"`
	Name      string `json:"name"      yaml:"name"`
	Topic     string `json:"topic"     yaml:"topic"`
	CreatedAt int64  `json:"createdAt" yaml:"created_at"`
	Cards     []Card `json:"cards"     yaml:"cards"`
}

// Verdict is the outcome class of a graded answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictPartial   Verdict = "partial"
	VerdictIncorrect Verdict = "incorrect"
)

// IsValid reports whether v is one of the known verdicts.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictCorrect, VerdictPartial, VerdictIncorrect:
		return true
	}
	return false
}

// Grade is the result of comparing a user's answer with the correct one.
// Score is always within [0, 1].
type Grade struct {
	Score   float64 `json:"score"   yaml:"score"`
	Verdict Verdict `json:"verdict" yaml:"verdict"`
	Tips    string  `json:"tips"    yaml:"tips"`
}

// ClampCardCount maps a requested card count into [MinCards, MaxCards].
// NaN and infinities map to MinCards; fractions are truncated.
func ClampCardCount(requested float64) int {
	if math.IsNaN(requested) || math.IsInf(requested, 0) {
		return MinCards
	}
	n := math.Trunc(requested)
	if n < MinCards {
		return MinCards
	}
	if n > MaxCards {
		return MaxCards
	}
	return int(n)
}

// NewID returns a fresh opaque identifier for cards and decks.
func NewID() string {
	return uuid.NewString()
}
