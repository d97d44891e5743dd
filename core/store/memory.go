package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore is an in-memory Store used for tests and for running the
// server without a database connection.
type memoryStore struct {
	mu       sync.RWMutex
	tables   map[string][]Record
	notifier *notifier
}

// NewMemory creates an empty in-memory Store.
func NewMemory() Store {
	return &memoryStore{
		tables:   make(map[string][]Record),
		notifier: newNotifier(),
	}
}

func (s *memoryStore) SelectAll(_ context.Context, table string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.tables[table]
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = cloneRecord(row)
	}
	return out, nil
}

func (s *memoryStore) FindByKey(_ context.Context, table, field, value string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.tables[table] {
		if str, ok := row[field].(string); ok && str == value {
			return cloneRecord(row), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) Insert(_ context.Context, table string, rec Record) (string, error) {
	row := cloneRecord(rec)
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	row["id"] = id
	row["created_at"] = now
	row["updated_at"] = now

	s.mu.Lock()
	s.tables[table] = append(s.tables[table], row)
	s.mu.Unlock()

	s.notifier.publish(Event{Table: table, Kind: EventInsert})
	return id, nil
}

func (s *memoryStore) Update(_ context.Context, table, id string, fields Record) error {
	s.mu.Lock()
	var found bool
	for _, row := range s.tables[table] {
		if row["id"] == id {
			for k, v := range fields {
				row[k] = v
			}
			row["updated_at"] = time.Now().UTC().Format(time.RFC3339)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	s.notifier.publish(Event{Table: table, Kind: EventUpdate})
	return nil
}

func (s *memoryStore) DeleteWhere(_ context.Context, table, field, value string) (int64, error) {
	s.mu.Lock()
	kept := s.tables[table][:0]
	var removed int64
	for _, row := range s.tables[table] {
		if str, ok := row[field].(string); ok && str == value {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.tables[table] = kept
	s.mu.Unlock()

	if removed > 0 {
		s.notifier.publish(Event{Table: table, Kind: EventDelete})
	}
	return removed, nil
}

func (s *memoryStore) Subscribe(tables ...string) (<-chan Event, func()) {
	return s.notifier.Subscribe(tables...)
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
