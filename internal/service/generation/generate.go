package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// Generate produces up to the clamped number of cards for a topic.
// Malformed model output degrades to fewer (possibly zero) cards; only a
// failed completion call is returned as an error.
func (s *Service) Generate(ctx context.Context, input GenerateInput) ([]domain.Card, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	topic := strings.TrimSpace(input.Topic)
	level := domain.Truncate(domain.NormalizeLevel(input.Level), MaxPromptLevelLen)
	count := domain.ClampCardCount(input.NCards)

	raw, err := s.llm.Complete(ctx, domain.CompletionRequest{
		System: systemPrompt(count, level),
		User:   userPrompt(topic),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("complete deck: %w", err)
	}

	cards := s.sanitize(raw, count)

	s.log.InfoContext(ctx, "deck generated",
		slog.String("topic", topic),
		slog.String("level", level),
		slog.Int("requested", count),
		slog.Int("cards", len(cards)),
	)

	return cards, nil
}
