package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/flashcard-tutor/internal/config"
	"github.com/heartmarshall/flashcard-tutor/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health     *HealthHandler
	Session    *SessionHandler
	Flashcards *FlashcardsHandler
	Quiz       *QuizHandler
	Decks      *DecksHandler
}

// RouterDeps are the cross-cutting pieces the router wires around handlers.
type RouterDeps struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	LLMPerMin   int
	Auth        middleware.Middleware
}

// NewRouter builds the HTTP API.
//
//	GET    /live /ready /health
//	POST   /api/session
//	POST   /api/flashcards          rate limited
//	POST   /api/quiz                rate limited
//	GET    /api/decks               auth
//	POST   /api/decks               auth
//	POST   /api/decks/import        auth
//	GET    /api/decks/{id}          auth
//	DELETE /api/decks/{id}          auth
//	GET    /api/decks/{id}/export   auth
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORS),
	))

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", h.Session.Create)

		r.Group(func(r chi.Router) {
			var limit middleware.Middleware
			if deps.RateLimiter != nil {
				limit = deps.RateLimiter.Limit(deps.LLMPerMin)
			}
			r.Use(middleware.Chain(limit))
			r.Post("/flashcards", h.Flashcards.Generate)
			r.Post("/quiz", h.Quiz.Handle)
		})

		r.Route("/decks", func(r chi.Router) {
			r.Use(deps.Auth)
			r.Get("/", h.Decks.List)
			r.Post("/", h.Decks.Save)
			r.Post("/import", h.Decks.Import)
			r.Get("/{id}", h.Decks.Get)
			r.Delete("/{id}", h.Decks.Delete)
			r.Get("/{id}/export", h.Decks.Export)
		})
	})

	return r
}
