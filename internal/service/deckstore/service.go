// Package deckstore persists saved decks as one serialized collection
// under a single key of a key-value store.
package deckstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
	"github.com/heartmarshall/flashcard-tutor/pkg/ctxutil"
)

// kvStore is the storage port: one opaque value per key.
// Get reports found=false for an absent key.
type kvStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Service manages the saved deck collection.
// Every mutation reads the whole collection and writes it back; concurrent
// writers to the same collection follow last-writer-wins.
type Service struct {
	kv    kvStore
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// NewService creates a new deck store service.
func NewService(log *slog.Logger, kv kvStore) *Service {
	return &Service{
		kv:    kv,
		log:   log.With("service", "deckstore"),
		now:   time.Now,
		newID: domain.NewID,
	}
}

// collectionKey scopes the collection to the calling client, if any.
func collectionKey(ctx context.Context) string {
	if clientID, ok := ctxutil.ClientIDFromCtx(ctx); ok {
		return "client:" + clientID.String() + ":" + domain.DecksKey
	}
	return domain.DecksKey
}

// readAll loads the collection. A missing or corrupt value is an empty
// collection; only a storage failure is an error.
func (s *Service) readAll(ctx context.Context) ([]domain.SavedDeck, error) {
	key := collectionKey(ctx)

	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read decks: %w", err)
	}
	if !found || raw == "" {
		return []domain.SavedDeck{}, nil
	}

	var decks []domain.SavedDeck
	if err := json.Unmarshal([]byte(raw), &decks); err != nil {
		s.log.WarnContext(ctx, "corrupt deck collection treated as empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return []domain.SavedDeck{}, nil
	}
	if decks == nil {
		decks = []domain.SavedDeck{}
	}
	return decks, nil
}

// writeAll overwrites the collection in one Set.
func (s *Service) writeAll(ctx context.Context, decks []domain.SavedDeck) error {
	b, err := json.Marshal(decks)
	if err != nil {
		return fmt.Errorf("encode decks: %w", err)
	}
	if err := s.kv.Set(ctx, collectionKey(ctx), string(b)); err != nil {
		return fmt.Errorf("write decks: %w", err)
	}
	return nil
}
