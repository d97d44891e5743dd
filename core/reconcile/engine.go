package reconcile

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/normalize"
	"github.com/reguiia/turnaround-vision-dashboard/core/schema"
	"github.com/reguiia/turnaround-vision-dashboard/core/store"
	"github.com/reguiia/turnaround-vision-dashboard/core/workbook"
)

// Engine synchronizes parsed workbooks into the remote store. One engine
// serves all nine tables; the schema catalog parameterizes everything
// table-specific.
type Engine struct {
	store  store.Store
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine over the given store.
func NewEngine(st store.Store, logger *zap.Logger) *Engine {
	return &Engine{store: st, logger: logger}
}

// ImportWorkbook reconciles every recognized sheet of a workbook into its
// table, best-effort per row. Sheets with no table mapping are recorded as
// warnings and skipped. Row and write failures accumulate in the report;
// only the context ending can cut an import short, and even then the report
// carries the partial progress.
func (e *Engine) ImportWorkbook(ctx context.Context, wb *workbook.Workbook) (*ImportReport, error) {
	report := &ImportReport{}
	matched := 0
	for _, sheet := range wb.Sheets {
		tbl, ok := schema.BySheet(sheet.Name)
		if !ok {
			report.SheetWarnings = append(report.SheetWarnings,
				fmt.Sprintf("unknown sheet %q skipped", sheet.Name))
			e.logger.Warn("unknown sheet skipped", zap.String("sheet", sheet.Name))
			continue
		}
		matched++
		result := e.syncTable(ctx, tbl, sheet.Rows)
		// A table with zero importable rows is skipped, not an error.
		if result.Inserted+result.Updated+result.Failed == 0 {
			continue
		}
		report.Tables = append(report.Tables, result)
	}
	report.finalize(matched)

	e.logger.Info("import finished",
		zap.String("outcome", string(report.Outcome)),
		zap.Int("inserted", report.Inserted),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// syncTable upserts the sheet's rows into one table. The remote table is
// loaded and indexed by business key once; writes then run strictly in sheet
// order. Two rows carrying the same key therefore insert once and update
// after, never insert twice.
func (e *Engine) syncTable(ctx context.Context, tbl *schema.Table, rows []workbook.Row) TableResult {
	result := TableResult{Table: tbl.Name, Sheet: tbl.SheetName}

	records, warnings, rowErrs := e.normalizeRows(tbl, rows)
	result.Warnings = warnings
	result.Errors = rowErrs
	result.Failed = len(rowErrs)
	if len(records) == 0 {
		return result
	}

	index, err := e.loadIndex(ctx, tbl)
	if err != nil {
		result.Failed += len(records)
		result.Errors = append(result.Errors, fmt.Sprintf("load %s: %v", tbl.Name, err))
		return result
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", tbl.Name, err))
			continue
		}

		key := recordKey(tbl, rec)
		if id, exists := index[key]; exists {
			if err := e.store.Update(ctx, tbl.Name, id, rec); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			result.Updated++
			continue
		}

		id, err := e.store.Insert(ctx, tbl.Name, rec)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		index[key] = id
		result.Inserted++
	}

	return result
}

func (e *Engine) normalizeRows(tbl *schema.Table, rows []workbook.Row) ([]store.Record, []string, []string) {
	var (
		records  []store.Record
		warnings []string
		rowErrs  []string
	)
	for i, raw := range rows {
		rec, warns, err := normalize.Row(tbl, raw)
		for _, w := range warns {
			warnings = append(warnings, fmt.Sprintf("row %d: %s", i+2, w))
		}
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}
	return records, warnings, rowErrs
}

// loadIndex maps the remote table's derived business keys to record ids.
func (e *Engine) loadIndex(ctx context.Context, tbl *schema.Table) (map[string]string, error) {
	rows, err := e.store.SelectAll(ctx, tbl.Name)
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		if id == "" {
			continue
		}
		index[recordKey(tbl, row)] = id
	}
	return index, nil
}

// recordKey derives the reconciliation key for a record: the business-key
// value, or the joined key parts for tables with a composite identity.
func recordKey(tbl *schema.Table, rec store.Record) string {
	fields := tbl.KeyFields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		if v, ok := rec[f]; ok && v != nil {
			parts[i] = fmt.Sprintf("%v", v)
		}
	}
	return strings.Join(parts, "\x1f")
}
