package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a single-record lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// Record is one table row keyed by column name.
type Record = map[string]any

// EventKind classifies a change-feed event.
type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event is one change notification from the store.
type Event struct {
	Table string
	Kind  EventKind
}

// Store is the remote table collaborator for the reconciliation layer.
//
// Implementations generate record identity themselves; callers never supply
// an id on insert. Subscribe returns a feed of change events for the given
// tables plus a cancel function; the feed is best-effort (a slow consumer may
// miss events and is expected to re-fetch on the next one).
type Store interface {
	// SelectAll returns every record of a table.
	SelectAll(ctx context.Context, table string) ([]Record, error)
	// FindByKey returns the first record whose field equals value,
	// or ErrNotFound.
	FindByKey(ctx context.Context, table, field, value string) (Record, error)
	// Insert stores a new record and returns its generated id.
	Insert(ctx context.Context, table string, rec Record) (string, error)
	// Update modifies the given fields of the record with the given id.
	Update(ctx context.Context, table, id string, fields Record) error
	// DeleteWhere removes all records whose field equals value and reports
	// how many were removed.
	DeleteWhere(ctx context.Context, table, field, value string) (int64, error)
	// Subscribe registers a change-feed consumer for the given tables.
	Subscribe(tables ...string) (<-chan Event, func())
}
