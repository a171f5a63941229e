package deckstore

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// Save stores a new deck with a fresh id and the current time.
// The name falls back to the topic, then to DefaultDeckName.
func (s *Service) Save(ctx context.Context, input SaveInput) (*domain.SavedDeck, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.TrimSpace(input.Topic)
	}
	if name == "" {
		name = DefaultDeckName
	}

	cards := make([]domain.Card, len(input.Cards))
	copy(cards, input.Cards)

	deck := domain.SavedDeck{
		ID:        s.newID(),
		Name:      name,
		Topic:     input.Topic,
		CreatedAt: s.now().UnixMilli(),
		Cards:     cards,
	}

	if err := s.Add(ctx, deck); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "deck saved",
		slog.String("deck_id", deck.ID),
		slog.String("name", deck.Name),
		slog.Int("cards", len(deck.Cards)),
	)

	return &deck, nil
}

// Add appends a fully built deck to the collection.
func (s *Service) Add(ctx context.Context, deck domain.SavedDeck) error {
	decks, err := s.readAll(ctx)
	if err != nil {
		return err
	}

	decks = append(decks, deck)
	return s.writeAll(ctx, decks)
}
