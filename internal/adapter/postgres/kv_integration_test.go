package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashcard-tutor/internal/adapter/postgres"
	"github.com/heartmarshall/flashcard-tutor/internal/adapter/postgres/testhelper"
)

func TestKVStore_Integration(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	store := postgres.NewKVStore(pool)
	ctx := context.Background()

	key := "it:" + uuid.NewString()

	if _, found, err := store.Get(ctx, key); err != nil || found {
		t.Fatalf("Get on empty key: found=%v err=%v", found, err)
	}

	if err := store.Set(ctx, key, "first"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, key, "second"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	value, found, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || value != "second" {
		t.Errorf("Get = %q, %v; want %q, true", value, found, "second")
	}

	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
