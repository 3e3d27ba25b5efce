package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/service"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
	"github.com/grigorev-dev/timetable-api/pkg/response"
)

// FilterHandler wires negative filters to HTTP routes.
type FilterHandler struct {
	filters *service.FilterService
}

// NewFilterHandler constructs a new FilterHandler.
func NewFilterHandler(filters *service.FilterService) *FilterHandler {
	return &FilterHandler{filters: filters}
}

// List godoc
// @Summary List a group's negative filters
// @Tags Filters
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/filters [get]
func (h *FilterHandler) List(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	filters, err := h.filters.List(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, filters)
}

// Set godoc
// @Summary Create or replace a teacher's filter in a group
// @Tags Filters
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body dto.SetFilterRequest true "Filter payload"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/filters [put]
func (h *FilterHandler) Set(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	filter, err := h.filters.Set(c.Request.Context(), groupID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, filter)
}

// Remove godoc
// @Summary Remove a teacher's filter from a group
// @Tags Filters
// @Produce json
// @Param id path int true "Group ID"
// @Param teacher query string true "Teacher name"
// @Success 204
// @Router /groups/{id}/filters [delete]
func (h *FilterHandler) Remove(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	teacher := c.Query("teacher")
	if teacher == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "teacher query parameter is required"))
		return
	}
	if err := h.filters.Remove(c.Request.Context(), groupID, teacher); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
