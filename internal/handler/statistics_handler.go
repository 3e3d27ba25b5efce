package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grigorev-dev/timetable-api/internal/service"
	"github.com/grigorev-dev/timetable-api/pkg/response"
)

// StatisticsHandler exposes per-group scheduling statistics.
type StatisticsHandler struct {
	stats *service.StatisticsService
}

// NewStatisticsHandler constructs a new StatisticsHandler.
func NewStatisticsHandler(stats *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

// Get godoc
// @Summary Get a group's scheduling statistics
// @Tags Statistics
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/statistics [get]
func (h *StatisticsHandler) Get(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.stats.Get(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}
