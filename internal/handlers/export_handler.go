package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves content downloads
type ExportHandler struct {
	export *services.ExportService
	logger *logrus.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService, logger *logrus.Logger) *ExportHandler {
	return &ExportHandler{export: exportService, logger: logger}
}

// ContentWorkbook handles GET /api/export/content.xlsx
func (h *ExportHandler) ContentWorkbook(c *gin.Context) {
	data, err := h.export.ContentWorkbook(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to export content")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="signage-content.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
