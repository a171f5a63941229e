package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/flashcard-tutor/internal/adapter/llm"
	"github.com/heartmarshall/flashcard-tutor/internal/auth"
	"github.com/heartmarshall/flashcard-tutor/internal/config"
	"github.com/heartmarshall/flashcard-tutor/internal/transport/middleware"
	"github.com/heartmarshall/flashcard-tutor/internal/transport/rest"
)

// Run is the HTTP service entry point. It loads configuration, opens the
// storage backend, wires services and serves the API until ctx is
// cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireServing(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("model", cfg.LLM.Model),
	)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	svcs := NewServices(logger, llm.NewClient(cfg.LLM, logger), store)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.ClientTokenTTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(store, store.Driver, Version),
		Session:    rest.NewSessionHandler(tokens, logger),
		Flashcards: rest.NewFlashcardsHandler(svcs.Generator, logger),
		Quiz:       rest.NewQuizHandler(svcs.Tutor, logger),
		Decks:      rest.NewDecksHandler(svcs.Decks, svcs.Importer, logger),
	}, rest.RouterDeps{
		Logger:      logger,
		CORS:        cfg.CORS,
		RateLimiter: limiter,
		LLMPerMin:   cfg.RateLimit.LLMPerMinute,
		Auth:        middleware.Auth(tokens),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// serve runs srv until ctx is done or the listener fails.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
