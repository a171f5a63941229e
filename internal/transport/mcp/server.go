package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/internal/service/deckstore"
	"github.com/heartmarshall/flashcard-tutor/internal/service/generation"
	"github.com/heartmarshall/flashcard-tutor/internal/service/tutor"
)

// DeckGenerator produces a fresh deck for a topic.
type DeckGenerator interface {
	Generate(ctx context.Context, input generation.GenerateInput) ([]domain.Card, error)
}

// CardTutor explains cards and grades answers.
type CardTutor interface {
	Explain(ctx context.Context, input tutor.ExplainInput) (string, error)
	Grade(ctx context.Context, input tutor.GradeInput) (domain.Grade, error)
}

// DeckStore manages the saved deck collection.
type DeckStore interface {
	List(ctx context.Context) ([]domain.SavedDeck, error)
	GetByID(ctx context.Context, id string) (domain.SavedDeck, bool, error)
	Save(ctx context.Context, input deckstore.SaveInput) (*domain.SavedDeck, error)
	DeleteByID(ctx context.Context, id string) error
}

// DeckImporter turns an interchange document into a saved deck.
type DeckImporter interface {
	Import(ctx context.Context, data []byte) (*domain.SavedDeck, error)
}

// Services contains all domain services exposed as tools.
type Services struct {
	Generator DeckGenerator
	Tutor     CardTutor
	Decks     DeckStore
	Importer  DeckImporter
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

const serverInstructions = `Flashcard tutor tools.

Use generate_deck to draft question/answer cards for a topic, then save_deck
(or generate_deck with save=true) to keep them. explain_card gives a short
explanation of one question. grade_answer scores a free-text answer against
the correct one and returns score, verdict and tips.

Saved decks are listed with list_decks and addressed by id. export_deck
returns a portable JSON document that import_deck accepts back.`

// NewServer creates an MCP server with every tool registered.
func NewServer(cfg Config) *sdkmcp.Server {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "flashcard-tutor",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       log,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(log, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(log, "outbound"))

	h := &toolHandlers{svc: cfg.Services, log: log.With("handler", "mcp")}
	h.register(server)

	return server
}

// Serve runs server over stdin/stdout until ctx is cancelled or the client
// disconnects.
func Serve(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}
