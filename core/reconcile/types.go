package reconcile

import "fmt"

// Outcome summarizes a whole import.
type Outcome string

const (
	// OutcomeSuccess means every importable row was written.
	OutcomeSuccess Outcome = "success"
	// OutcomePartial means some rows were written and some failed.
	OutcomePartial Outcome = "partial"
	// OutcomeFailed means nothing was written: all rows failed, or no sheet
	// matched a known table.
	OutcomeFailed Outcome = "failed"
)

// TableResult aggregates the outcome of reconciling one table.
type TableResult struct {
	// Table is the database table name.
	Table string `json:"table"`

	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`

	// Inserted counts records created under new business keys.
	Inserted int `json:"inserted"`

	// Updated counts records rewritten under existing business keys.
	Updated int `json:"updated"`

	// Failed counts rows rejected by validation or by remote writes.
	Failed int `json:"failed"`

	// Errors carries the per-row diagnostic messages.
	Errors []string `json:"errors,omitempty"`

	// Warnings carries non-fatal per-row notes (dropped dates and the like).
	Warnings []string `json:"warnings,omitempty"`
}

// ImportReport is the aggregate outcome of one workbook import.
type ImportReport struct {
	// Tables holds one result per reconciled table, in sheet order.
	Tables []TableResult `json:"tables"`

	// SheetWarnings lists sheets that were skipped (no table mapping).
	SheetWarnings []string `json:"sheet_warnings,omitempty"`

	// Inserted, Updated and Failed are totals across all tables.
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Failed   int `json:"failed"`

	// Outcome classifies the import as a whole.
	Outcome Outcome `json:"outcome"`
}

// Message renders the user-facing summary. Per-row detail stays in the
// report; this line is what a notification surface shows.
func (r *ImportReport) Message() string {
	ok := r.Inserted + r.Updated
	switch r.Outcome {
	case OutcomeSuccess:
		if ok == 0 {
			return "import succeeded: no records to import"
		}
		return fmt.Sprintf("import succeeded: %d records imported or updated", ok)
	case OutcomePartial:
		return fmt.Sprintf("import partially succeeded: %d ok, %d failed", ok, r.Failed)
	default:
		if r.Failed > 0 {
			return fmt.Sprintf("import failed: all %d records failed", r.Failed)
		}
		return "import failed: no sheet matched a known table"
	}
}

// finalize computes the totals and classifies the import. matchedSheets counts
// the sheets that mapped to a known table, whether or not they carried
// importable rows; a matched sheet with nothing to import is a success, not a
// failure.
func (r *ImportReport) finalize(matchedSheets int) {
	for _, t := range r.Tables {
		r.Inserted += t.Inserted
		r.Updated += t.Updated
		r.Failed += t.Failed
	}
	switch {
	case matchedSheets == 0:
		r.Outcome = OutcomeFailed
	case r.Inserted+r.Updated == 0 && r.Failed > 0:
		r.Outcome = OutcomeFailed
	case r.Failed > 0:
		r.Outcome = OutcomePartial
	default:
		r.Outcome = OutcomeSuccess
	}
}
