// Package storage provides the object-storage client used to archive
// exported workbooks.
//
// Archiving is optional: with no bucket configured the feature is off and
// the exporter serves downloads only. Archive failures are warnings, never
// export failures.
package storage
