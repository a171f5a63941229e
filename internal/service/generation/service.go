// Package generation turns a topic into a deck of flashcards using the
// completion collaborator.
package generation

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

type completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Service generates decks.
type Service struct {
	llm   completer
	log   *slog.Logger
	newID func() string
}

// NewService creates a new generation service.
func NewService(log *slog.Logger, llm completer) *Service {
	return &Service{
		llm:   llm,
		log:   log.With("service", "generation"),
		newID: domain.NewID,
	}
}
