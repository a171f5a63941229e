package generation

import (
	"encoding/json"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// sanitize parses the model reply into at most limit cards.
// A reply that is not a JSON object, or has no "cards" array, yields an
// empty deck. Every surviving card gets string fields, capped lengths and a
// fresh id.
func (s *Service) sanitize(raw string, limit int) []domain.Card {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		doc = map[string]any{}
	}

	items, _ := doc["cards"].([]any)
	if len(items) > limit {
		items = items[:limit]
	}

	cards := make([]domain.Card, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		cards = append(cards, domain.Card{
			ID:    s.newID(),
			Front: domain.Truncate(domain.CoerceString(fields["front"]), domain.MaxFrontLen),
			Back:  domain.Truncate(domain.CoerceString(fields["back"]), domain.MaxBackLen),
		})
	}
	return cards
}
