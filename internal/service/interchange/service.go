package interchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// deckAdder appends a fully built deck to the saved collection.
type deckAdder interface {
	Add(ctx context.Context, deck domain.SavedDeck) error
}

// Service imports interchange documents into the deck store.
type Service struct {
	decks deckAdder
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// NewService creates a new interchange service.
func NewService(log *slog.Logger, decks deckAdder) *Service {
	return &Service{
		decks: decks,
		log:   log.With("service", "interchange"),
		now:   time.Now,
		newID: domain.NewID,
	}
}
