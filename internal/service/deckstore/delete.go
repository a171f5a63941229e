package deckstore

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// DeleteByID removes the deck with the given id. Deleting a missing deck
// is not an error.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	decks, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.SavedDeck, 0, len(decks))
	for _, d := range decks {
		if d.ID != id {
			kept = append(kept, d)
		}
	}

	if err := s.writeAll(ctx, kept); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "deck deleted",
		slog.String("deck_id", id),
		slog.Bool("existed", len(kept) != len(decks)),
	)
	return nil
}
