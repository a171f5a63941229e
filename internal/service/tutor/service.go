// Package tutor explains cards and grades free-text answers.
package tutor

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

type completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

const (
	explainSystemPrompt = "You are a friendly tutor. Explain briefly in 2-4 sentences, avoid jargon, add a tiny example if helpful."
	gradeSystemPrompt   = `You are a fair grader. Compare user answer to the correct answer. Return JSON: {"score":0..1,"verdict":"correct|partial|incorrect","tips":"..."}`

	// FallbackTips is returned when the grader reply cannot be parsed.
	FallbackTips = "Try focusing on the key idea."
)

// Service provides explanation and grading.
type Service struct {
	llm completer
	log *slog.Logger
}

// NewService creates a new tutor service.
func NewService(log *slog.Logger, llm completer) *Service {
	return &Service{
		llm: llm,
		log: log.With("service", "tutor"),
	}
}
