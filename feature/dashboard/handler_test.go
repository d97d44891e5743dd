package dashboard

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/reconcile"
	"github.com/reguiia/turnaround-vision-dashboard/core/storage/mocks"
	"github.com/reguiia/turnaround-vision-dashboard/core/store"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc := NewService(store.NewMemory(), nil, "", zap.NewNop(), reconcile.Config{})
	t.Cleanup(svc.Close)
	handler := NewHandler(svc, zap.NewNop())
	handler.RegisterRoutes(app)
	return app, svc
}

func uploadRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "dashboard.xlsx")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/dashboard/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newSingleSheetFile(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	for r := range rows {
		start, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, start, &rows[r]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestHandleImportMissingFile(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/dashboard/import", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleImportGarbageUpload(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, []byte("not a spreadsheet")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "workbook")
}

func TestHandleImportSuccess(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, importWorkbookBytes(t)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Message string                 `json:"message"`
		Report  reconcile.ImportReport `json:"report"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, reconcile.OutcomeSuccess, body.Report.Outcome)
	assert.Equal(t, 2, body.Report.Inserted)
}

func TestHandleImportNothingImported(t *testing.T) {
	app, _ := setupTestApp(t)

	// A workbook with only unrecognized sheets imports nothing.
	f := newSingleSheetFile(t, "Scratch", [][]any{{"notes"}, {"ignore"}})
	resp, err := app.Test(uploadRequest(t, f))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHandleExportEmpty(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/dashboard/export", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleExportDownload(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, importWorkbookBytes(t)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("GET", "/dashboard/export", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "turnaround_dashboard.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestHandleDataEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, importWorkbookBytes(t)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The snapshot behind the endpoint refreshes asynchronously.
	var body map[string][]map[string]any
	require.Eventually(t, func() bool {
		req := httptest.NewRequest("GET", "/dashboard/data", nil)
		resp, err := app.Test(req)
		if err != nil || resp.StatusCode != fiber.StatusOK {
			return false
		}
		body = nil
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false
		}
		return len(body["Risks"]) == 2
	}, time.Second, 10*time.Millisecond)

	// Keys are display sheet names, one per table.
	require.Contains(t, body, "Risks")
	require.Contains(t, body, "Milestones + Deliverables")
	assert.Equal(t, "R001", body["Risks"][0]["risk_id"])
	assert.Empty(t, body["Action Log"])
}

func TestHandleArchivesDisabled(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/dashboard/exports", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleArchivesListing(t *testing.T) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(store.NewMemory(), mockClient, "turnaround-archive", zap.NewNop(), reconcile.Config{})
	t.Cleanup(svc.Close)
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)

	mockClient.On("BucketExists", mock.Anything, "turnaround-archive").Return(true, nil)
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Key: "exports/turnaround_export_20250615T103000Z.xlsx", Size: 1400}
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "turnaround-archive", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	req := httptest.NewRequest("GET", "/dashboard/exports", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entries []ArchiveEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "turnaround_export_20250615T103000Z.xlsx", entries[0].Name)
}

func TestHandleArchiveDownload(t *testing.T) {
	app := fiber.New()
	mockClient := new(mocks.Client)
	svc := NewService(store.NewMemory(), mockClient, "turnaround-archive", zap.NewNop(), reconcile.Config{})
	t.Cleanup(svc.Close)
	NewHandler(svc, zap.NewNop()).RegisterRoutes(app)

	mockClient.On("GetObject", mock.Anything, "turnaround-archive",
		"exports/turnaround_export_20250615T103000Z.xlsx", mock.Anything,
	).Return(io.NopCloser(bytes.NewReader([]byte("PKarchived"))), nil)

	req := httptest.NewRequest("GET", "/dashboard/exports/turnaround_export_20250615T103000Z.xlsx", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get(fiber.HeaderContentType))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("PKarchived"), data)
}

func TestHandleSummaryEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, importWorkbookBytes(t)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("GET", "/dashboard/summary", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var counts map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&counts))
	assert.Equal(t, 2, counts["Risks"])
}
