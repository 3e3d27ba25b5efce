package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/service"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
	"github.com/grigorev-dev/timetable-api/pkg/response"
)

// SavedScheduleHandler wires named snapshots to HTTP routes.
type SavedScheduleHandler struct {
	saved *service.SavedScheduleService
}

// NewSavedScheduleHandler constructs a new SavedScheduleHandler.
func NewSavedScheduleHandler(saved *service.SavedScheduleService) *SavedScheduleHandler {
	return &SavedScheduleHandler{saved: saved}
}

// Save godoc
// @Summary Save the group's current schedule under a name
// @Tags SavedSchedules
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body dto.SaveScheduleRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Router /groups/{id}/saved-schedules [post]
func (h *SavedScheduleHandler) Save(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	record, err := h.saved.Save(c.Request.Context(), groupID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// List godoc
// @Summary List the group's saved schedules
// @Tags SavedSchedules
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/saved-schedules [get]
func (h *SavedScheduleHandler) List(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	list, err := h.saved.List(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Get godoc
// @Summary Get a saved schedule with its lessons
// @Tags SavedSchedules
// @Produce json
// @Param scheduleId path string true "Saved schedule ID"
// @Success 200 {object} response.Envelope
// @Router /saved-schedules/{scheduleId} [get]
func (h *SavedScheduleHandler) Get(c *gin.Context) {
	record, err := h.saved.Get(c.Request.Context(), c.Param("scheduleId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record)
}

// Restore godoc
// @Summary Replace the group's live schedule with a snapshot
// @Description Snapshot entries that no longer fit the current subjects and filters are skipped.
// @Tags SavedSchedules
// @Produce json
// @Param id path int true "Group ID"
// @Param scheduleId path string true "Saved schedule ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/saved-schedules/{scheduleId}/restore [post]
func (h *SavedScheduleHandler) Restore(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	applied, err := h.saved.Restore(c.Request.Context(), groupID, c.Param("scheduleId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applied)
}

// Delete godoc
// @Summary Delete a saved schedule
// @Tags SavedSchedules
// @Produce json
// @Param scheduleId path string true "Saved schedule ID"
// @Success 204
// @Router /saved-schedules/{scheduleId} [delete]
func (h *SavedScheduleHandler) Delete(c *gin.Context) {
	if err := h.saved.Delete(c.Request.Context(), c.Param("scheduleId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
