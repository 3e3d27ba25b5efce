package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/grigorev-dev/timetable-api/internal/service"
	"github.com/grigorev-dev/timetable-api/pkg/response"
)

// ExportHandler serves downloadable schedule renderings.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs a new ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Download the group's schedule
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Group ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /groups/{id}/schedule/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.Export(c.Request.Context(), groupID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(200, result.ContentType, result.Data)
}

// ExportSaved godoc
// @Summary Download a saved schedule
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param scheduleId path string true "Saved schedule ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /saved-schedules/{scheduleId}/export [get]
func (h *ExportHandler) ExportSaved(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))
	result, err := h.exports.ExportSaved(c.Request.Context(), c.Param("scheduleId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(200, result.ContentType, result.Data)
}
