package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/flashcard-tutor/internal/auth"
)

type clientTokenIssuer interface {
	IssueClientToken() (*auth.ClientToken, error)
}

// SessionHandler issues anonymous client tokens.
type SessionHandler struct {
	tokens clientTokenIssuer
	log    *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(tokens clientTokenIssuer, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{tokens: tokens, log: logger.With("handler", "session")}
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ClientID  string    `json:"clientId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Create handles POST /api/session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	issued, err := h.tokens.IssueClientToken()
	if err != nil {
		h.log.ErrorContext(r.Context(), "issue client token", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.InfoContext(r.Context(), "client session created", slog.String("client_id", issued.ClientID.String()))

	writeJSON(w, http.StatusCreated, sessionResponse{
		Token:     issued.Token,
		ClientID:  issued.ClientID.String(),
		ExpiresAt: issued.ExpiresAt.UTC(),
	})
}
