package tutor

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

//go:generate moq -out completer_mock_test.go -pkg tutor . completer

func replyWith(raw string) *completerMock {
	return &completerMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return raw, nil
		},
	}
}

// ---------------------------------------------------------------------------
// Explain
// ---------------------------------------------------------------------------

func TestExplain_TrimsReply(t *testing.T) {
	t.Parallel()

	llm := replyWith("\n  A stack is last-in, first-out. Think of a pile of plates.  \n")
	svc := NewService(slog.Default(), llm)

	got, err := svc.Explain(context.Background(), ExplainInput{Front: "What is a stack?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "A stack is last-in, first-out. Think of a pile of plates."; got != want {
		t.Errorf("explanation: got %q, want %q", got, want)
	}

	req := llm.CompleteCalls()[0].Req
	if req.JSON {
		t.Error("explain should not use JSON mode")
	}
	if req.User != "Explain: What is a stack?" {
		t.Errorf("user prompt: got %q", req.User)
	}
	if req.System != explainSystemPrompt {
		t.Errorf("system prompt: got %q", req.System)
	}
}

func TestExplain_EmptyReply(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), replyWith("   "))

	got, err := svc.Explain(context.Background(), ExplainInput{Front: "What is a queue?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("explanation: got %q, want empty", got)
	}
}

func TestExplain_MissingFront(t *testing.T) {
	t.Parallel()

	llm := replyWith("unused")
	svc := NewService(slog.Default(), llm)

	_, err := svc.Explain(context.Background(), ExplainInput{Front: ""})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(llm.CompleteCalls()) != 0 {
		t.Error("completion must not be called on invalid input")
	}
}

func TestExplain_CompletionFailure(t *testing.T) {
	t.Parallel()

	upstream := errors.New("connection reset")
	svc := NewService(slog.Default(), &completerMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "", upstream
		},
	})

	if _, err := svc.Explain(context.Background(), ExplainInput{Front: "Q"}); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Grade
// ---------------------------------------------------------------------------

func TestGrade_ParsesReply(t *testing.T) {
	t.Parallel()

	llm := replyWith(`{"score":0.7,"verdict":"partial","tips":"Mention the sorted precondition."}`)
	svc := NewService(slog.Default(), llm)

	got, err := svc.Grade(context.Background(), GradeInput{
		Front:      "What does binary search need?",
		Correct:    "A sorted collection",
		UserAnswer: "a collection",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.Grade{Score: 0.7, Verdict: domain.VerdictPartial, Tips: "Mention the sorted precondition."}
	if got != want {
		t.Errorf("grade: got %+v, want %+v", got, want)
	}

	req := llm.CompleteCalls()[0].Req
	if !req.JSON {
		t.Error("grade should use JSON mode")
	}
	wantUser := "Q: What does binary search need?\nCorrect: A sorted collection\nUser: a collection"
	if req.User != wantUser {
		t.Errorf("user prompt: got %q, want %q", req.User, wantUser)
	}
}

func TestGrade_FallbackOnInvalidJSON(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), replyWith("You did great!"))

	got, err := svc.Grade(context.Background(), GradeInput{Front: "Q", Correct: "A", UserAnswer: "B"})
	if err != nil {
		t.Fatalf("grading must not fail on malformed output: %v", err)
	}
	if got.Score != 0 || got.Verdict != domain.VerdictIncorrect || got.Tips == "" {
		t.Errorf("fallback: got %+v", got)
	}
	if got != FallbackGrade() {
		t.Errorf("fallback: got %+v, want %+v", got, FallbackGrade())
	}
}

func TestGrade_NormalizesReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
		want  domain.Grade
	}{
		{
			name:  "score above one",
			reply: `{"score":3,"verdict":"correct","tips":""}`,
			want:  domain.Grade{Score: 1, Verdict: domain.VerdictCorrect},
		},
		{
			name:  "negative score",
			reply: `{"score":-0.5,"verdict":"incorrect","tips":"Review it."}`,
			want:  domain.Grade{Score: 0, Verdict: domain.VerdictIncorrect, Tips: "Review it."},
		},
		{
			name:  "numeric string score",
			reply: `{"score":"0.5","verdict":"Partial"}`,
			want:  domain.Grade{Score: 0.5, Verdict: domain.VerdictPartial},
		},
		{
			name:  "unknown verdict derived from high score",
			reply: `{"score":0.9,"verdict":"great"}`,
			want:  domain.Grade{Score: 0.9, Verdict: domain.VerdictCorrect},
		},
		{
			name:  "missing verdict derived from low score",
			reply: `{"score":0.1}`,
			want:  domain.Grade{Score: 0.1, Verdict: domain.VerdictIncorrect},
		},
		{
			name:  "empty object",
			reply: `{}`,
			want:  domain.Grade{Score: 0, Verdict: domain.VerdictIncorrect},
		},
		{
			name:  "json array is unparseable",
			reply: `[1,2]`,
			want:  FallbackGrade(),
		},
		{
			name:  "json null is unparseable",
			reply: `null`,
			want:  FallbackGrade(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(slog.Default(), replyWith(tt.reply))

			got, err := svc.Grade(context.Background(), GradeInput{Front: "Q", Correct: "A", UserAnswer: "B"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("grade: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGrade_EmptyUserAnswerAllowed(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), replyWith(`{"score":0,"verdict":"incorrect","tips":"Give it a try."}`))

	if _, err := svc.Grade(context.Background(), GradeInput{Front: "Q", Correct: "A", UserAnswer: ""}); err != nil {
		t.Fatalf("empty user answer should be graded: %v", err)
	}
}

func TestGrade_MissingFields(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), replyWith("unused"))

	_, err := svc.Grade(context.Background(), GradeInput{UserAnswer: "x"})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 2 {
		t.Errorf("field errors: got %d, want 2", len(ve.Errors))
	}
}

func TestGrade_CompletionFailure(t *testing.T) {
	t.Parallel()

	upstream := errors.New("unauthorized api key")
	svc := NewService(slog.Default(), &completerMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "", upstream
		},
	})

	if _, err := svc.Grade(context.Background(), GradeInput{Front: "Q", Correct: "A"}); !errors.Is(err, upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestExplainAndGrade_WhitespaceOnlyFieldsAccepted(t *testing.T) {
	t.Parallel()

	llm := replyWith(`{"score":1,"verdict":"partially correct","tips":"Say more."}`)
	svc := NewService(slog.Default(), llm)

	if _, err := svc.Explain(context.Background(), ExplainInput{Front: "   "}); err != nil {
		t.Fatalf("Explain: unexpected error: %v", err)
	}
	if _, err := svc.Grade(context.Background(), GradeInput{Front: " ", Correct: "\t", UserAnswer: "x"}); err != nil {
		t.Fatalf("Grade: unexpected error: %v", err)
	}
	if got := len(llm.CompleteCalls()); got != 2 {
		t.Errorf("Complete calls: got %d, want 2", got)
	}
}
