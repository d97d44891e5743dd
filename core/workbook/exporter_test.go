package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reguiia/turnaround-vision-dashboard/core/schema"
)

func TestExportNoData(t *testing.T) {
	_, err := Export(nil)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Export(map[string][]map[string]any{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExportAllTablesEmpty(t *testing.T) {
	snapshot := make(map[string][]map[string]any)
	for _, name := range schema.TableNames() {
		snapshot[name] = nil
	}
	_, err := Export(snapshot)
	require.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "all tables empty")
}

func TestExportOneSheetPerTable(t *testing.T) {
	snapshot := map[string][]map[string]any{
		"risks": {
			{"risk_id": "R001", "risk_name": "Material Delivery Delays", "probability": 70.0},
		},
	}

	data, err := Export(snapshot)
	require.NoError(t, err)

	wb, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 9)

	for _, tbl := range schema.Tables() {
		_, ok := wb.Sheet(tbl.SheetName)
		assert.True(t, ok, "missing sheet %q", tbl.SheetName)
	}
}

func TestExportCanonicalHeaders(t *testing.T) {
	snapshot := map[string][]map[string]any{
		"risks": {
			{"risk_id": "R001", "risk_name": "Equipment Failure", "probability": 30.0, "impact": 95.0},
		},
	}

	data, err := Export(snapshot)
	require.NoError(t, err)
	wb, err := Parse(data)
	require.NoError(t, err)

	sheet, ok := wb.Sheet("Risks")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 1)

	// Headers are canonical spellings, so values key by risk_id, not Risk_ID.
	assert.Equal(t, "R001", sheet.Rows[0]["risk_id"])
	assert.Equal(t, "Equipment Failure", sheet.Rows[0]["risk_name"])
	assert.Equal(t, "95", sheet.Rows[0]["impact"])
}

func TestExportStripsInternalFields(t *testing.T) {
	snapshot := map[string][]map[string]any{
		"general_info": {
			{
				"id":         "11111111-1111-1111-1111-111111111111",
				"created_at": "2025-01-01T00:00:00Z",
				"updated_at": "2025-01-02T00:00:00Z",
				"field":      "TA Name",
				"value":      "Major Turnaround 2025",
			},
		},
	}

	data, err := Export(snapshot)
	require.NoError(t, err)
	wb, err := Parse(data)
	require.NoError(t, err)

	sheet, ok := wb.Sheet("General Info")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "TA Name", sheet.Rows[0]["field"])
	_, hasID := sheet.Rows[0]["id"]
	assert.False(t, hasID)
	_, hasCreated := sheet.Rows[0]["created_at"]
	assert.False(t, hasCreated)
}

func TestExportEmptyTableHeaderOnly(t *testing.T) {
	snapshot := map[string][]map[string]any{
		"general_info": {
			{"field": "TA Name", "value": "Major Turnaround 2025"},
		},
		"risks": nil,
	}

	data, err := Export(snapshot)
	require.NoError(t, err)
	wb, err := Parse(data)
	require.NoError(t, err)

	// The empty table still gets its sheet, header row only, so a re-import
	// of the exported file round-trips the column names.
	sheet, ok := wb.Sheet("Risks")
	require.True(t, ok)
	assert.Empty(t, sheet.Rows)
}

func TestExportRowsSortedByBusinessKey(t *testing.T) {
	snapshot := map[string][]map[string]any{
		"action_log": {
			{"action_id": "A003", "description": "Complete safety assessment"},
			{"action_id": "A001", "description": "Update material specifications"},
			{"action_id": "A002", "description": "Finalize vendor contracts"},
		},
	}

	data, err := Export(snapshot)
	require.NoError(t, err)
	wb, err := Parse(data)
	require.NoError(t, err)

	sheet, ok := wb.Sheet("Action Log")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "A001", sheet.Rows[0]["action_id"])
	assert.Equal(t, "A002", sheet.Rows[1]["action_id"])
	assert.Equal(t, "A003", sheet.Rows[2]["action_id"])
}
