package deckstore

import (
	"context"
	"sort"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// List returns all saved decks, newest first.
func (s *Service) List(ctx context.Context) ([]domain.SavedDeck, error) {
	decks, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(decks, func(i, j int) bool {
		return decks[i].CreatedAt > decks[j].CreatedAt
	})
	return decks, nil
}

// GetByID returns the deck with the given id. A missing deck is reported
// with found=false and a nil error.
func (s *Service) GetByID(ctx context.Context, id string) (domain.SavedDeck, bool, error) {
	decks, err := s.readAll(ctx)
	if err != nil {
		return domain.SavedDeck{}, false, err
	}

	for _, d := range decks {
		if d.ID == id {
			return d, true, nil
		}
	}
	return domain.SavedDeck{}, false, nil
}
