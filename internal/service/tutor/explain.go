package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// Explain returns a short explanation of a card's question.
// An empty model reply yields an empty string, not an error.
func (s *Service) Explain(ctx context.Context, input ExplainInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	raw, err := s.llm.Complete(ctx, domain.CompletionRequest{
		System: explainSystemPrompt,
		User:   "Explain: " + input.Front,
	})
	if err != nil {
		return "", fmt.Errorf("complete explanation: %w", err)
	}

	explanation := strings.TrimSpace(raw)

	s.log.DebugContext(ctx, "card explained", slog.Int("length", len(explanation)))

	return explanation, nil
}
