package app

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/deckstore"
	"github.com/heartmarshall/flashcard-tutor/internal/service/generation"
	"github.com/heartmarshall/flashcard-tutor/internal/service/interchange"
	"github.com/heartmarshall/flashcard-tutor/internal/service/tutor"
	"github.com/heartmarshall/flashcard-tutor/internal/transport/mcp"
)

// Completer is the language model collaborator shared by generation and
// tutoring.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Services is the set of domain services every entry point exposes.
type Services struct {
	Generator *generation.Service
	Tutor     *tutor.Service
	Decks     *deckstore.Service
	Importer  *interchange.Service
}

// NewServices wires the domain services over one completer and one KV
// backend.
func NewServices(log *slog.Logger, llm Completer, kv KV) *Services {
	decks := deckstore.NewService(log, kv)
	return &Services{
		Generator: generation.NewService(log, llm),
		Tutor:     tutor.NewService(log, llm),
		Decks:     decks,
		Importer:  interchange.NewService(log, decks),
	}
}

// MCP returns the services in the shape the MCP tool server expects.
func (s *Services) MCP() mcp.Services {
	return mcp.Services{
		Generator: s.Generator,
		Tutor:     s.Tutor,
		Decks:     s.Decks,
		Importer:  s.Importer,
	}
}
