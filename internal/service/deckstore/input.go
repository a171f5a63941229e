package deckstore

import (
	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// DefaultDeckName is used when neither a name nor a topic is given.
const DefaultDeckName = "Untitled Deck"

// SaveInput holds the parameters for saving a deck.
type SaveInput struct {
	Name  string
	Topic string
	Cards []domain.Card
}

// Validate checks all fields and collects all errors.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Cards) == 0 {
		errs = append(errs, domain.FieldError{Field: "cards", Message: "at least one card required"})
	}
	for _, c := range i.Cards {
		if c.ID == "" {
			errs = append(errs, domain.FieldError{Field: "cards", Message: "every card needs an id"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
