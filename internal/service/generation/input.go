package generation

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// MinTopicLen is the shortest accepted topic after trimming.
const MinTopicLen = 3

// MaxPromptLevelLen caps the level label placed in the prompt.
const MaxPromptLevelLen = 40

// GenerateInput holds the parameters for generating a deck.
// NCards is clamped and Level is truncated, neither is rejected.
type GenerateInput struct {
	Topic  string
	Level  string
	NCards float64
}

// Validate checks all fields and collects all errors.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError

	topic := strings.TrimSpace(i.Topic)
	if utf8.RuneCountInString(topic) < MinTopicLen {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "at least 3 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
