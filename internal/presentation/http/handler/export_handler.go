package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anviet/tuition-api/internal/application/service"
	"github.com/anviet/tuition-api/internal/domain/billing"
	"github.com/anviet/tuition-api/internal/domain/enum"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/request"
	"github.com/anviet/tuition-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles spreadsheet export and on-demand backups
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportHistory downloads the filtered history as an xlsx workbook
// @Summary Export history
// @Tags history
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Student name"
// @Param type query string false "daycare or individual"
// @Success 200 {file} file
// @Router /history/export [get]
func (h *ExportHandler) ExportHistory(c *gin.Context) {
	var q request.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var buf bytes.Buffer
	filter := billing.HistoryFilter{Search: q.Search, Type: enum.BillingType(q.Type)}
	if err := h.exportService.WriteHistory(c.Request.Context(), &buf, filter); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, h.exportService.ExportFileName()))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Backup writes a backup of the history to the storage path now
func (h *ExportHandler) Backup(c *gin.Context) {
	files, err := h.exportService.Backup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Backup written", gin.H{"files": files})
}
