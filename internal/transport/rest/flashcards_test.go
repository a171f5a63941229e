package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/generation"
)

//go:generate moq -out mocks_test.go -pkg rest . deckGenerator cardTutor

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func postJSON(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestFlashcards_Generate_Success(t *testing.T) {
	t.Parallel()

	svc := &deckGeneratorMock{
		GenerateFunc: func(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error) {
			return []domain.Card{{ID: "1", Front: "Q", Back: "A"}}, nil
		},
	}
	h := NewFlashcardsHandler(svc, testLogger())

	rec := postJSON(h.Generate, "/api/flashcards", `{"topic":"Binary search","level":"advanced","nCards":7}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deck":[{"id":"1","front":"Q","back":"A"}]}`, rec.Body.String())

	require.Len(t, svc.GenerateCalls(), 1)
	in := svc.GenerateCalls()[0].Input
	assert.Equal(t, "Binary search", in.Topic)
	assert.Equal(t, "advanced", in.Level)
	assert.Equal(t, 7.0, in.NCards)
}

func TestFlashcards_Generate_Defaults(t *testing.T) {
	t.Parallel()

	svc := &deckGeneratorMock{
		GenerateFunc: func(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error) {
			return []domain.Card{}, nil
		},
	}
	h := NewFlashcardsHandler(svc, testLogger())

	for _, body := range []string{
		`{"topic":"Photosynthesis"}`,
		`{"topic":"Photosynthesis","nCards":"abc"}`,
		`{"topic":"Photosynthesis","nCards":null}`,
		`{"topic":"Photosynthesis","nCards":{"n":3}}`,
	} {
		rec := postJSON(h.Generate, "/api/flashcards", body)
		require.Equal(t, http.StatusOK, rec.Code, body)
		assert.JSONEq(t, `{"deck":[]}`, rec.Body.String())
	}

	for _, call := range svc.GenerateCalls() {
		assert.Equal(t, "beginner", call.Input.Level)
		assert.Equal(t, float64(domain.DefaultCards), call.Input.NCards)
	}
}

func TestFlashcards_Generate_LongLevelAccepted(t *testing.T) {
	t.Parallel()

	h := NewFlashcardsHandler(generation.NewService(testLogger(), scriptedCompleter{}), testLogger())
	body := `{"topic":"Binary search","level":"` + strings.Repeat("L", 41) + `","nCards":5}`

	rec := postJSON(h.Generate, "/api/flashcards", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Deck, 2)
}

func TestFlashcards_Generate_NumericStringCount(t *testing.T) {
	t.Parallel()

	svc := &deckGeneratorMock{
		GenerateFunc: func(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error) {
			return nil, nil
		},
	}
	h := NewFlashcardsHandler(svc, testLogger())

	rec := postJSON(h.Generate, "/api/flashcards", `{"topic":"Photosynthesis","nCards":" 15 "}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15.0, svc.GenerateCalls()[0].Input.NCards)
}

func TestFlashcards_Generate_MissingTopic(t *testing.T) {
	t.Parallel()

	svc := &deckGeneratorMock{
		GenerateFunc: func(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error) {
			return nil, domain.NewValidationError("topic", "at least 3 characters")
		},
	}
	h := NewFlashcardsHandler(svc, testLogger())

	for _, body := range []string{`{}`, `{"topic":""}`, `{"topic":null}`, `{"topic":"ab"}`, `{"topic":"   x  "}`} {
		rec := postJSON(h.Generate, "/api/flashcards", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Please provide a topic."}`, rec.Body.String(), body)
	}
}

func TestFlashcards_Generate_Failures(t *testing.T) {
	t.Parallel()

	svc := &deckGeneratorMock{
		GenerateFunc: func(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error) {
			return nil, errors.New("upstream 529")
		},
	}
	h := NewFlashcardsHandler(svc, testLogger())

	for _, body := range []string{`{"topic":"Photosynthesis"}`, `not json`} {
		rec := postJSON(h.Generate, "/api/flashcards", body)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to generate deck", resp["error"])
	}
}

func TestRequestedCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want float64
	}{
		{nil, 10},
		{12.0, 12},
		{"8", 8},
		{"1e2", 100},
		{"", 10},
		{"NaN", 10},
		{"Infinity", 10},
		{true, 10},
		{[]any{1.0}, 10},
	}

	for _, tt := range tests {
		if got := requestedCount(tt.in); got != tt.want {
			t.Errorf("requestedCount(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
