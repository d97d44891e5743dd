// Package workbook handles the binary spreadsheet round trip.
//
// Parse decodes workbook bytes into an ordered set of named sheets, each a
// sequence of header-keyed rows with raw cell text. Export is the inverse:
// it serializes a per-table snapshot into a workbook using the schema
// catalog's sheet names and canonical headers. Both directions consult the
// same catalog, so an exported file re-imports losslessly.
package workbook
