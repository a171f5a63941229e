package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

// Grade compares the user's answer with the correct one.
// Unparseable model output yields FallbackGrade; only a failed completion
// call is returned as an error.
func (s *Service) Grade(ctx context.Context, input GradeInput) (domain.Grade, error) {
	if err := input.Validate(); err != nil {
		return domain.Grade{}, err
	}

	raw, err := s.llm.Complete(ctx, domain.CompletionRequest{
		System: gradeSystemPrompt,
		User:   fmt.Sprintf("Q: %s\nCorrect: %s\nUser: %s", input.Front, input.Correct, input.UserAnswer),
		JSON:   true,
	})
	if err != nil {
		return domain.Grade{}, fmt.Errorf("complete grade: %w", err)
	}

	grade, ok := parseGrade(raw)
	if !ok {
		s.log.WarnContext(ctx, "grader reply unparseable, using fallback", slog.Int("length", len(raw)))
	}

	return grade, nil
}

// FallbackGrade is the deterministic result for an unparseable grader reply.
func FallbackGrade() domain.Grade {
	return domain.Grade{Score: 0, Verdict: domain.VerdictIncorrect, Tips: FallbackTips}
}

// parseGrade decodes a grader reply. It reports false when the reply is not
// a JSON object. A parsed object is normalized: score clamped to [0, 1],
// unknown verdicts derived from the score, tips coerced to text.
func parseGrade(raw string) (domain.Grade, bool) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc == nil {
		return FallbackGrade(), false
	}

	score := clampScore(toScore(doc["score"]))

	verdict := domain.Verdict(strings.ToLower(strings.TrimSpace(domain.CoerceString(doc["verdict"]))))
	if !verdict.IsValid() {
		verdict = verdictFor(score)
	}

	return domain.Grade{
		Score:   score,
		Verdict: verdict,
		Tips:    strings.TrimSpace(domain.CoerceString(doc["tips"])),
	}, true
}

func toScore(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func clampScore(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func verdictFor(score float64) domain.Verdict {
	switch {
	case score >= 0.8:
		return domain.VerdictCorrect
	case score >= 0.4:
		return domain.VerdictPartial
	default:
		return domain.VerdictIncorrect
	}
}
