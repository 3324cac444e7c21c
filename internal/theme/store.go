package theme

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/codr1/nyxxdocs/internal/db"
)

// Store is the persisted key-value slot the preference is read from.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is a process-wide Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

type preferenceQueries interface {
	GetPreference(ctx context.Context, key string) (db.Preference, error)
	UpsertPreference(ctx context.Context, arg db.UpsertPreferenceParams) error
}

// SQLStore keeps the preference in the sqlite preferences table, so other
// processes sharing the file can change it.
type SQLStore struct {
	queries preferenceQueries
}

func NewSQLStore(queries preferenceQueries) *SQLStore {
	return &SQLStore{queries: queries}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	pref, err := s.queries.GetPreference(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return pref.Value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if err := s.queries.UpsertPreference(ctx, db.UpsertPreferenceParams{Key: key, Value: value}); err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}
