// Package store abstracts the remote table collaborator.
//
// The Store interface exposes exactly the operation kinds the reconciliation
// layer needs: select all, find by business key, insert, update, delete by
// predicate, and a subscribe-to-changes feed. Two implementations exist: a
// GORM-backed store for the hosted database and an in-memory store for tests
// and databaseless runs.
//
// Records travel as plain column maps rather than per-table model structs;
// the schema catalog owns the table layout. The store generates record
// identity (uuid) and maintains created_at/updated_at itself, so imported
// data can never smuggle an identity in.
//
// # Change feed
//
// Both implementations publish an Event on every successful write. Delivery
// is non-blocking: a consumer that falls behind simply misses events, which
// is harmless because consumers re-fetch all tables on any event.
package store
