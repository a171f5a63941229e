package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// describe turns a service error into a message fit for a terminal.
func describe(err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		msgs := make([]string, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			msgs = append(msgs, fe.Field+": "+fe.Message)
		}
		return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
	case errors.Is(err, domain.ErrInvalidJSON):
		return errors.New("invalid JSON file")
	case errors.Is(err, domain.ErrInvalidDeckFormat):
		return errors.New("invalid deck format")
	default:
		return err
	}
}
