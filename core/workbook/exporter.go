package workbook

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/reguiia/turnaround-vision-dashboard/core/schema"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data to export")

// Export serializes a per-table snapshot into workbook bytes, one sheet per
// catalog table in catalog order, named with display sheet names.
//
// Headers use the canonical field spellings, so an exported file re-imports
// through the first alias of every field. Store-managed columns (id,
// timestamps) are stripped. An empty table still gets its sheet, with the
// header row only, so re-import round-trips the column set. Rows are ordered
// by business key for deterministic output.
//
// Export fails with ErrNoData when the snapshot is missing entirely or every
// table is empty; it never writes an empty workbook silently.
func Export(snapshot map[string][]map[string]any) ([]byte, error) {
	if len(snapshot) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrNoData)
	}
	total := 0
	for _, rows := range snapshot {
		total += len(rows)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: all tables empty", ErrNoData)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, tbl := range schema.Tables() {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), tbl.SheetName); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(tbl.SheetName); err != nil {
				return nil, fmt.Errorf("create sheet %q: %w", tbl.SheetName, err)
			}
		}
		if err := writeSheet(f, tbl, snapshot[tbl.Name]); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, tbl *schema.Table, rows []map[string]any) error {
	names := tbl.FieldNames()
	header := make([]any, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := f.SetSheetRow(tbl.SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write headers for %q: %w", tbl.SheetName, err)
	}

	ordered := make([]map[string]any, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return keyOf(tbl, ordered[i]) < keyOf(tbl, ordered[j])
	})

	for r, rec := range ordered {
		cells := make([]any, len(names))
		for c, name := range names {
			cells[c] = cellValue(rec[name])
		}
		start, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(tbl.SheetName, start, &cells); err != nil {
			return fmt.Errorf("write row %d of %q: %w", r+2, tbl.SheetName, err)
		}
	}
	return nil
}

func keyOf(tbl *schema.Table, rec map[string]any) string {
	parts := make([]string, 0, len(tbl.KeyFields()))
	for _, field := range tbl.KeyFields() {
		parts = append(parts, fmt.Sprintf("%v", rec[field]))
	}
	return strings.Join(parts, "\x1f")
}

func cellValue(v any) any {
	if v == nil {
		return ""
	}
	return v
}
