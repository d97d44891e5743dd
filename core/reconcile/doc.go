// Package reconcile synchronizes normalized workbook data into the remote
// store.
//
// One generic engine serves all nine tables; the schema catalog supplies the
// table name, business key and field list, so there is a single
// insert-or-update algorithm with nine data-driven configurations rather
// than nine hand-written variants.
//
// # Algorithm
//
// Per table: load the remote rows once and index them by business key, then
// walk the sheet rows in order, updating records whose key already exists
// and inserting the rest. The upsert is idempotent: importing the same
// workbook twice produces no duplicate rows, only updates.
//
// Writes within a table are strictly sequential. The existence-check-then-
// write pattern is not safe to race: two concurrent upserts of the same key
// could both miss and both insert. Serializing per table keeps the invariant
// without needing a server-side unique constraint.
//
// # Failure policy
//
// Row and write failures accumulate into the ImportReport and never abort
// the import; the report classifies the whole run as success, partial, or
// failed. A sheet with no table mapping is a warning, not an error.
package reconcile
