package interchange

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// DefaultImportName names imported decks that carry no usable name.
const DefaultImportName = "Imported Deck"

// Import parses an interchange document and appends the result to the
// deck store. Nothing is stored when the document is rejected.
func (s *Service) Import(ctx context.Context, data []byte) (*domain.SavedDeck, error) {
	deck, err := s.Parse(data)
	if err != nil {
		return nil, err
	}

	if err := s.decks.Add(ctx, deck); err != nil {
		return nil, fmt.Errorf("store imported deck: %w", err)
	}

	s.log.InfoContext(ctx, "deck imported",
		slog.String("deck_id", deck.ID),
		slog.String("name", deck.Name),
		slog.Int("cards", len(deck.Cards)),
	)
	return &deck, nil
}

// Parse decodes and validates an interchange document without storing it.
// The deck always gets a fresh id and the current time; the schema tag
// is not checked.
func (s *Service) Parse(data []byte) (domain.SavedDeck, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.SavedDeck{}, fmt.Errorf("%w: %v", domain.ErrInvalidJSON, err)
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return domain.SavedDeck{}, fmt.Errorf("%w: document is not an object", domain.ErrInvalidDeckFormat)
	}

	rawCards, ok := doc["cards"].([]any)
	if !ok {
		return domain.SavedDeck{}, fmt.Errorf("%w: cards is not an array", domain.ErrInvalidDeckFormat)
	}

	cards := make([]domain.Card, 0, len(rawCards))
	for _, el := range rawCards {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}

		id, _ := obj["id"].(string)
		if id == "" {
			id = s.newID()
		}
		cards = append(cards, domain.Card{
			ID:    id,
			Front: domain.CoerceString(obj["front"]),
			Back:  domain.CoerceString(obj["back"]),
		})
	}

	name, _ := doc["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultImportName
	}
	topic, _ := doc["topic"].(string)

	return domain.SavedDeck{
		ID:        s.newID(),
		Name:      name,
		Topic:     topic,
		CreatedAt: s.now().UnixMilli(),
		Cards:     cards,
	}, nil
}
