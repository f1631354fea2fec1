package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"club-nexus/backend/internal/service"
	"club-nexus/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportApplications downloads a drive's applications as an .xlsx workbook.
// GET /api/v1/recruitment/drives/:id/export
func (h *ExportHandler) ExportApplications(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportApplications(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoApplications):
			response.NotFound(c, 16101, "drive has no applications")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			writeError(c, err)
		}
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
