package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/tutor"
)

const (
	msgMissingFront     = "Missing 'front'."
	msgMissingGradeArgs = "Missing 'front', 'correct' or 'userAnswer'."
	msgQuizFailed       = "Failed to handle quiz action"
)

type cardTutor interface {
	Explain(ctx context.Context, input tutor.ExplainInput) (string, error)
	Grade(ctx context.Context, input tutor.GradeInput) (domain.Grade, error)
}

// QuizHandler serves POST /api/quiz.
type QuizHandler struct {
	svc cardTutor
	log *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc cardTutor, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{svc: svc, log: logger.With("handler", "quiz")}
}

type quizRequest struct {
	Mode       any `json:"mode"`
	Front      any `json:"front"`
	Correct    any `json:"correct"`
	UserAnswer any `json:"userAnswer"`
}

type explainResponse struct {
	Explanation string `json:"explanation"`
}

// Handle dispatches on the "mode" field.
func (h *QuizHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.WarnContext(r.Context(), "undecodable body", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, msgQuizFailed)
		return
	}

	mode, _ := req.Mode.(string)
	switch mode {
	case "explain":
		h.explain(w, r, req)
	case "grade":
		h.grade(w, r, req)
	default:
		writeError(w, http.StatusBadRequest, "Unknown mode")
	}
}

func (h *QuizHandler) explain(w http.ResponseWriter, r *http.Request, req quizRequest) {
	if !truthy(req.Front) {
		writeError(w, http.StatusBadRequest, msgMissingFront)
		return
	}

	explanation, err := h.svc.Explain(r.Context(), tutor.ExplainInput{Front: domain.CoerceString(req.Front)})
	if err != nil {
		h.handleError(w, r, err, msgMissingFront)
		return
	}
	writeJSON(w, http.StatusOK, explainResponse{Explanation: explanation})
}

func (h *QuizHandler) grade(w http.ResponseWriter, r *http.Request, req quizRequest) {
	userAnswer, isString := req.UserAnswer.(string)
	if !truthy(req.Front) || !truthy(req.Correct) || !isString {
		writeError(w, http.StatusBadRequest, msgMissingGradeArgs)
		return
	}

	grade, err := h.svc.Grade(r.Context(), tutor.GradeInput{
		Front:      domain.CoerceString(req.Front),
		Correct:    domain.CoerceString(req.Correct),
		UserAnswer: userAnswer,
	})
	if err != nil {
		h.handleError(w, r, err, msgMissingGradeArgs)
		return
	}
	writeJSON(w, http.StatusOK, grade)
}

func (h *QuizHandler) handleError(w http.ResponseWriter, r *http.Request, err error, validationMsg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMsg)
	default:
		h.log.ErrorContext(r.Context(), "quiz action", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, msgQuizFailed)
	}
}
