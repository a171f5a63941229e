package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/deckstore"
	"github.com/heartmarshall/flashcard-tutor/internal/service/generation"
	"github.com/heartmarshall/flashcard-tutor/internal/service/interchange"
	"github.com/heartmarshall/flashcard-tutor/internal/service/tutor"
)

type toolHandlers struct {
	svc Services
	log *slog.Logger
}

func (h *toolHandlers) register(server *sdkmcp.Server) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_deck",
		Description: "Generate question/answer flashcards for a topic. Optionally save them as a new deck.",
	}, h.generateDeck)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "explain_card",
		Description: "Explain the concept behind a flashcard question in a few sentences.",
	}, h.explainCard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "grade_answer",
		Description: "Grade a free-text answer against the correct one. Returns score, verdict and tips.",
	}, h.gradeAnswer)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_decks",
		Description: "List saved decks, newest first.",
	}, h.listDecks)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_deck",
		Description: "Fetch one saved deck with all its cards.",
	}, h.getDeck)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_deck",
		Description: "Save a list of cards as a new deck.",
	}, h.saveDeck)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_deck",
		Description: "Delete a saved deck. Deleting an unknown id is not an error.",
	}, h.deleteDeck)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_deck",
		Description: "Export a saved deck as a portable JSON document.",
	}, h.exportDeck)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "import_deck",
		Description: "Import a deck from a JSON document produced by export_deck.",
	}, h.importDeck)
}

// ---------------------------------------------------------------------------
// Generation and tutoring
// ---------------------------------------------------------------------------

type generateDeckInput struct {
	Topic  string  `json:"topic"             jsonschema:"subject of the deck, at least 3 characters"`
	Level  string  `json:"level,omitempty"   jsonschema:"difficulty label such as beginner or advanced"`
	NCards float64 `json:"n_cards,omitempty" jsonschema:"number of cards, clamped to 5..20 (default 10)"`
	Save   bool    `json:"save,omitempty"    jsonschema:"store the generated cards as a new deck"`
	Name   string  `json:"name,omitempty"    jsonschema:"deck name used with save"`
}

type generateDeckOutput struct {
	Cards []domain.Card     `json:"cards"`
	Deck  *domain.SavedDeck `json:"deck,omitempty"`
}

func (h *toolHandlers) generateDeck(ctx context.Context, _ *sdkmcp.CallToolRequest, in generateDeckInput) (*sdkmcp.CallToolResult, generateDeckOutput, error) {
	count := in.NCards
	if count == 0 {
		count = domain.DefaultCards
	}

	cards, err := h.svc.Generator.Generate(ctx, generation.GenerateInput{
		Topic:  in.Topic,
		Level:  in.Level,
		NCards: count,
	})
	if err != nil {
		return nil, generateDeckOutput{}, h.toolError("generate_deck", err)
	}

	out := generateDeckOutput{Cards: cards}
	if !in.Save {
		return nil, out, nil
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = generation.SuggestedDeckName(in.Topic, in.Level)
	}
	deck, err := h.svc.Decks.Save(ctx, deckstore.SaveInput{
		Name:  name,
		Topic: strings.TrimSpace(in.Topic),
		Cards: cards,
	})
	if err != nil {
		return nil, generateDeckOutput{}, h.toolError("generate_deck", err)
	}
	out.Deck = deck
	return nil, out, nil
}

type explainCardInput struct {
	Front string `json:"front" jsonschema:"the flashcard question"`
}

type explainCardOutput struct {
	Explanation string `json:"explanation"`
}

func (h *toolHandlers) explainCard(ctx context.Context, _ *sdkmcp.CallToolRequest, in explainCardInput) (*sdkmcp.CallToolResult, explainCardOutput, error) {
	text, err := h.svc.Tutor.Explain(ctx, tutor.ExplainInput{Front: in.Front})
	if err != nil {
		return nil, explainCardOutput{}, h.toolError("explain_card", err)
	}
	return nil, explainCardOutput{Explanation: text}, nil
}

type gradeAnswerInput struct {
	Front      string `json:"front"      jsonschema:"the flashcard question"`
	Correct    string `json:"correct"    jsonschema:"the reference answer"`
	UserAnswer string `json:"userAnswer" jsonschema:"the answer to grade, may be empty"`
}

func (h *toolHandlers) gradeAnswer(ctx context.Context, _ *sdkmcp.CallToolRequest, in gradeAnswerInput) (*sdkmcp.CallToolResult, domain.Grade, error) {
	grade, err := h.svc.Tutor.Grade(ctx, tutor.GradeInput{
		Front:      in.Front,
		Correct:    in.Correct,
		UserAnswer: in.UserAnswer,
	})
	if err != nil {
		return nil, domain.Grade{}, h.toolError("grade_answer", err)
	}
	return nil, grade, nil
}

// ---------------------------------------------------------------------------
// Saved decks
// ---------------------------------------------------------------------------

type listDecksInput struct{}

type listDecksOutput struct {
	Decks []domain.SavedDeck `json:"decks"`
}

func (h *toolHandlers) listDecks(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listDecksInput) (*sdkmcp.CallToolResult, listDecksOutput, error) {
	decks, err := h.svc.Decks.List(ctx)
	if err != nil {
		return nil, listDecksOutput{}, h.toolError("list_decks", err)
	}
	return nil, listDecksOutput{Decks: decks}, nil
}

type deckIDInput struct {
	ID string `json:"id" jsonschema:"id of a saved deck"`
}

type deckOutput struct {
	Deck domain.SavedDeck `json:"deck"`
}

func (h *toolHandlers) getDeck(ctx context.Context, _ *sdkmcp.CallToolRequest, in deckIDInput) (*sdkmcp.CallToolResult, deckOutput, error) {
	deck, err := h.lookup(ctx, in.ID)
	if err != nil {
		return nil, deckOutput{}, h.toolError("get_deck", err)
	}
	return nil, deckOutput{Deck: deck}, nil
}

type saveDeckInput struct {
	Name  string        `json:"name,omitempty"  jsonschema:"deck name, defaults to the topic"`
	Topic string        `json:"topic,omitempty" jsonschema:"subject of the deck"`
	Cards []domain.Card `json:"cards"           jsonschema:"cards to store, each with id, front and back"`
}

func (h *toolHandlers) saveDeck(ctx context.Context, _ *sdkmcp.CallToolRequest, in saveDeckInput) (*sdkmcp.CallToolResult, deckOutput, error) {
	deck, err := h.svc.Decks.Save(ctx, deckstore.SaveInput{
		Name:  in.Name,
		Topic: in.Topic,
		Cards: in.Cards,
	})
	if err != nil {
		return nil, deckOutput{}, h.toolError("save_deck", err)
	}
	return nil, deckOutput{Deck: *deck}, nil
}

type deleteDeckOutput struct {
	ID string `json:"id"`
}

func (h *toolHandlers) deleteDeck(ctx context.Context, _ *sdkmcp.CallToolRequest, in deckIDInput) (*sdkmcp.CallToolResult, deleteDeckOutput, error) {
	if err := h.svc.Decks.DeleteByID(ctx, in.ID); err != nil {
		return nil, deleteDeckOutput{}, h.toolError("delete_deck", err)
	}
	return nil, deleteDeckOutput{ID: in.ID}, nil
}

type exportDeckOutput struct {
	FileName string `json:"fileName"`
	Document string `json:"document"`
}

func (h *toolHandlers) exportDeck(ctx context.Context, _ *sdkmcp.CallToolRequest, in deckIDInput) (*sdkmcp.CallToolResult, exportDeckOutput, error) {
	deck, err := h.lookup(ctx, in.ID)
	if err != nil {
		return nil, exportDeckOutput{}, h.toolError("export_deck", err)
	}
	doc, err := interchange.Export(deck)
	if err != nil {
		return nil, exportDeckOutput{}, h.toolError("export_deck", err)
	}
	return nil, exportDeckOutput{
		FileName: interchange.ExportFileName(deck.Name),
		Document: string(doc),
	}, nil
}

type importDeckInput struct {
	Document string `json:"document" jsonschema:"JSON text of an exported deck"`
}

func (h *toolHandlers) importDeck(ctx context.Context, _ *sdkmcp.CallToolRequest, in importDeckInput) (*sdkmcp.CallToolResult, deckOutput, error) {
	deck, err := h.svc.Importer.Import(ctx, []byte(in.Document))
	if err != nil {
		return nil, deckOutput{}, h.toolError("import_deck", err)
	}
	return nil, deckOutput{Deck: *deck}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *toolHandlers) lookup(ctx context.Context, id string) (domain.SavedDeck, error) {
	deck, ok, err := h.svc.Decks.GetByID(ctx, id)
	if err != nil {
		return domain.SavedDeck{}, err
	}
	if !ok {
		return domain.SavedDeck{}, fmt.Errorf("deck %q: %w", id, domain.ErrNotFound)
	}
	return deck, nil
}

// toolError converts a service error into the message the client sees.
// Caller mistakes are reported verbatim; anything else is logged and
// replaced by a generic message.
func (h *toolHandlers) toolError(tool string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		msgs := make([]string, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			msgs = append(msgs, fe.Field+": "+fe.Message)
		}
		return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
	case errors.Is(err, domain.ErrNotFound):
		return errors.New("deck not found")
	case errors.Is(err, domain.ErrInvalidJSON):
		return errors.New("invalid JSON document")
	case errors.Is(err, domain.ErrInvalidDeckFormat):
		return errors.New("invalid deck format")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		h.log.Error("tool failed", slog.String("tool", tool), slog.String("error", err.Error()))
		return fmt.Errorf("%s failed", tool)
	}
}
