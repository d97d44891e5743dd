// Package schema is the static catalog of the nine dashboard tables.
//
// Each table descriptor carries the database table name, the display sheet
// name used in workbooks, the business-key field, the canonical field list,
// per-field header aliases, and per-field value kinds. The catalog is the
// single source of truth consulted by both import (normalization) and export
// (sheet naming and header order), which keeps the sheet-name to table-name
// mapping bijective in both directions.
//
// # Usage
//
//	tbl, ok := schema.BySheet("Risks")
//	for _, f := range tbl.Fields { ... }
package schema
