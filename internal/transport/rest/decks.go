package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/deckstore"
	"github.com/heartmarshall/flashcard-tutor/internal/service/interchange"
)

// maxImportBytes bounds an uploaded interchange document.
const maxImportBytes = 2 << 20

type deckStore interface {
	List(ctx context.Context) ([]domain.SavedDeck, error)
	Save(ctx context.Context, input deckstore.SaveInput) (*domain.SavedDeck, error)
	GetByID(ctx context.Context, id string) (domain.SavedDeck, bool, error)
	DeleteByID(ctx context.Context, id string) error
}

type deckImporter interface {
	Import(ctx context.Context, data []byte) (*domain.SavedDeck, error)
}

// DecksHandler serves the saved deck endpoints.
type DecksHandler struct {
	store    deckStore
	importer deckImporter
	log      *slog.Logger
}

// NewDecksHandler creates a DecksHandler.
func NewDecksHandler(store deckStore, importer deckImporter, logger *slog.Logger) *DecksHandler {
	return &DecksHandler{store: store, importer: importer, log: logger.With("handler", "decks")}
}

type cardDTO struct {
	ID    string `json:"id"    validate:"required"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type saveDeckRequest struct {
	Name  string    `json:"name"  validate:"max=200"`
	Topic string    `json:"topic" validate:"max=200"`
	Cards []cardDTO `json:"cards" validate:"required,min=1,dive"`
}

type deckResponse struct {
	Deck domain.SavedDeck `json:"deck"`
}

type deckListResponse struct {
	Decks []domain.SavedDeck `json:"decks"`
}

// List handles GET /api/decks.
func (h *DecksHandler) List(w http.ResponseWriter, r *http.Request) {
	decks, err := h.store.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deckListResponse{Decks: decks})
}

// Save handles POST /api/decks.
func (h *DecksHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRequest(req); err != nil {
		h.handleError(w, r, err)
		return
	}

	cards := make([]domain.Card, len(req.Cards))
	for i, c := range req.Cards {
		cards[i] = domain.Card{ID: c.ID, Front: c.Front, Back: c.Back}
	}

	deck, err := h.store.Save(r.Context(), deckstore.SaveInput{Name: req.Name, Topic: req.Topic, Cards: cards})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deckResponse{Deck: *deck})
}

// Get handles GET /api/decks/{id}.
func (h *DecksHandler) Get(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, deckResponse{Deck: deck})
}

// Delete handles DELETE /api/decks/{id}.
func (h *DecksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/decks/{id}/export.
func (h *DecksHandler) Export(w http.ResponseWriter, r *http.Request) {
	deck, ok := h.lookup(w, r)
	if !ok {
		return
	}

	doc, err := interchange.Export(deck)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", interchange.ExportFileName(deck.Name)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// Import handles POST /api/decks/import with a raw interchange document.
func (h *DecksHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		h.handleError(w, r, err)
		return
	}

	deck, err := h.importer.Import(r.Context(), data)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deckResponse{Deck: *deck})
}

func (h *DecksHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.SavedDeck, bool) {
	deck, found, err := h.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return domain.SavedDeck{}, false
	}
	if !found {
		writeError(w, http.StatusNotFound, "deck not found")
		return domain.SavedDeck{}, false
	}
	return deck, true
}

func (h *DecksHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidJSON):
		writeError(w, http.StatusBadRequest, "Invalid JSON file.")
	case errors.Is(err, domain.ErrInvalidDeckFormat):
		writeError(w, http.StatusBadRequest, "Invalid deck format.")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "deck not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		h.log.ErrorContext(r.Context(), "deck operation", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
