package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNotAWorkbook is returned when the byte stream is not a recognizable
// spreadsheet container.
var ErrNotAWorkbook = errors.New("not a recognizable workbook")

// Row is one sheet row keyed by header cell text.
type Row = map[string]string

// Sheet is one named grid of rows.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is the decoded form of a spreadsheet file, sheets in file order.
type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the named sheet, if present.
func (w *Workbook) Sheet(name string) (*Sheet, bool) {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i], true
		}
	}
	return nil, false
}

// Parse decodes workbook bytes into named sheets of header-keyed rows.
//
// Cells are read raw, so date-styled cells arrive as their serial text and
// numeric cells as plain numeric text; coercion is the normalizer's job. The
// first row of each sheet supplies the headers; short rows are padded with
// blanks and cells beyond the header row are ignored.
func Parse(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAWorkbook, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, decodeSheet(name, rows))
	}
	return wb, nil
}

func decodeSheet(name string, rows [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(rows) == 0 {
		return sheet
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	for _, raw := range rows[1:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(raw) {
				value = raw[i]
			}
			row[header] = value
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}
