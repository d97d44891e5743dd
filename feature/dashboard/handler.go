package dashboard

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/logger"
	"github.com/reguiia/turnaround-vision-dashboard/core/reconcile"
	"github.com/reguiia/turnaround-vision-dashboard/core/workbook"
)

// Handler handles HTTP requests for the dashboard data round trip.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dashboard")
	group.Post("/import", h.HandleImport)
	group.Get("/export", h.HandleExport)
	group.Get("/exports", h.HandleArchives)
	group.Get("/exports/:name", h.HandleArchiveDownload)
	group.Get("/data", h.HandleData)
	group.Get("/summary", h.HandleSummary)
}

// HandleImport imports an uploaded workbook into the dashboard tables.
// @Summary Import workbook
// @Description Upload an .xlsx/.xls workbook and reconcile its sheets into the dashboard tables.
// @Tags dashboard
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook file"
// @Success 200 {object} reconcile.ImportReport "Import report"
// @Failure 400 {object} map[string]string "Unreadable workbook"
// @Failure 422 {object} reconcile.ImportReport "Nothing imported"
// @Router /dashboard/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing workbook file upload",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error("upload open failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		l.Error("upload read failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "could not read uploaded file",
		})
	}

	report, err := h.service.Import(c.Context(), data)
	if err != nil {
		if errors.Is(err, workbook.ErrNotAWorkbook) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to parse workbook, check the file format",
			})
		}
		l.Error("import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	status := fiber.StatusOK
	if report.Outcome == reconcile.OutcomeFailed {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"message": report.Message(),
		"report":  report,
	})
}

// HandleExport downloads the current dashboard data as a workbook.
// @Summary Export workbook
// @Description Serialize all dashboard tables into an .xlsx download.
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Workbook file"
// @Failure 404 {object} map[string]string "Nothing to export"
// @Router /dashboard/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	data, err := h.service.Export(c.Context())
	if err != nil {
		if errors.Is(err, workbook.ErrNoData) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="turnaround_dashboard.xlsx"`)
	return c.Send(data)
}

// HandleArchives lists the archived exports in object storage.
// @Summary List archived exports
// @Description Archived export workbooks, newest first.
// @Tags dashboard
// @Produce json
// @Success 200 {array} ArchiveEntry "Archive listing"
// @Failure 404 {object} map[string]string "Archiving not configured"
// @Router /dashboard/exports [get]
func (h *Handler) HandleArchives(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	entries, err := h.service.Archives(c.Context())
	if err != nil {
		if errors.Is(err, ErrArchiveDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("archive listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(entries)
}

// HandleArchiveDownload streams one archived export.
// @Summary Download archived export
// @Description Stream one archived export workbook by its listing name.
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name path string true "Archive name"
// @Success 200 {file} binary "Workbook file"
// @Failure 404 {object} map[string]string "Archiving not configured"
// @Router /dashboard/exports/{name} [get]
func (h *Handler) HandleArchiveDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	obj, err := h.service.OpenArchive(c.Context(), c.Params("name"))
	if err != nil {
		if errors.Is(err, ErrArchiveDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("archive download failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+c.Params("name")+`"`)
	// fasthttp closes the body stream itself once the response is written.
	return c.SendStream(obj)
}

// HandleData returns all nine tables keyed by display sheet name.
// @Summary Dashboard data
// @Description Current snapshot of all dashboard tables.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string][]map[string]any "Per-sheet records"
// @Router /dashboard/data [get]
func (h *Handler) HandleData(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	data, err := h.service.Data(c.Context())
	if err != nil {
		l.Error("data fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(data)
}

// HandleSummary returns per-table record counts.
// @Summary Dashboard summary
// @Description Record counts per dashboard table.
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]int "Per-sheet counts"
// @Router /dashboard/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	counts, err := h.service.Summary(c.Context())
	if err != nil {
		l.Error("summary fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(counts)
}
