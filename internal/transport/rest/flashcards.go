package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/generation"
)

type deckGenerator interface {
	Generate(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error)
}

// FlashcardsHandler serves POST /api/flashcards.
type FlashcardsHandler struct {
	svc deckGenerator
	log *slog.Logger
}

// NewFlashcardsHandler creates a FlashcardsHandler.
func NewFlashcardsHandler(svc deckGenerator, logger *slog.Logger) *FlashcardsHandler {
	return &FlashcardsHandler{svc: svc, log: logger.With("handler", "flashcards")}
}

type generateRequest struct {
	Topic  any `json:"topic"`
	Level  any `json:"level"`
	NCards any `json:"nCards"`
}

type generateResponse struct {
	Deck []domain.Card `json:"deck"`
}

// Generate handles POST /api/flashcards.
func (h *FlashcardsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.WarnContext(r.Context(), "undecodable body", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to generate deck")
		return
	}

	if !truthy(req.Topic) {
		writeError(w, http.StatusBadRequest, "Please provide a topic.")
		return
	}

	level := "beginner"
	if req.Level != nil {
		level = domain.CoerceString(req.Level)
	}

	deck, err := h.svc.Generate(r.Context(), generation.GenerateInput{
		Topic:  domain.CoerceString(req.Topic),
		Level:  level,
		NCards: requestedCount(req.NCards),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Deck: deck})
}

// requestedCount accepts a number or a numeric string. Anything else,
// including non-finite values, becomes the default count.
func requestedCount(v any) float64 {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return domain.DefaultCards
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.DefaultCards
		}
		n = f
	default:
		return domain.DefaultCards
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return domain.DefaultCards
	}
	return n
}

func (h *FlashcardsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve) && len(ve.Errors) > 0 && ve.Errors[0].Field == "topic":
		writeError(w, http.StatusBadRequest, "Please provide a topic.")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	default:
		h.log.ErrorContext(r.Context(), "generate deck", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Failed to generate deck")
	}
}
