// Package normalize maps raw sheet rows onto canonical table records.
//
// Given a table descriptor from the schema catalog, it resolves heterogeneous
// header spellings, coerces numeric and date values, trims text, and enforces
// the non-empty business-key rule. Coercion is deliberately permissive:
// unparsable numbers become zero and unparsable dates are dropped with a
// warning, so a single bad cell never sinks an import.
//
// Date handling accepts day-first forms (15/06/2025, 15-06-2025), ISO dates,
// spreadsheet date serials (epoch offset 25569 days from 1899-12-30), and a
// few common textual layouts, all normalized to YYYY-MM-DD.
package normalize
