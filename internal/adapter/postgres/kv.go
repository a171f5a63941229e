package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/flashcard-tutor/internal/domain"
)

const kvTable = "kv_entries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// KVStore keeps string values in the kv_entries table.
type KVStore struct {
	q Querier
}

// NewKVStore creates a KV store on top of q.
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q}
}

// Get returns the value under key; found is false when no row exists.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := psql.Select("value").
		From(kvTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	if err := s.q.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		mapped := mapError(err, "get", key)
		if errors.Is(mapped, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, mapped
	}
	return value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query, args, err := psql.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("now()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, "set", key)
	}
	return nil
}

// Ping checks database connectivity.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.q.Ping(ctx)
}
