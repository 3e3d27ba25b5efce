package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grigorev-dev/timetable-api/internal/dto"
	"github.com/grigorev-dev/timetable-api/internal/service"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
	"github.com/grigorev-dev/timetable-api/pkg/response"
)

// ScheduleHandler wires the weekly grid to HTTP routes.
type ScheduleHandler struct {
	schedules *service.ScheduleService
	metrics   *service.MetricsService
}

// NewScheduleHandler constructs a new ScheduleHandler.
func NewScheduleHandler(schedules *service.ScheduleService, metrics *service.MetricsService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, metrics: metrics}
}

// List godoc
// @Summary Get a group's schedule
// @Tags Schedule
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/schedule [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	lessons, err := h.schedules.List(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lessons)
}

// Generate godoc
// @Summary Generate a group's schedule
// @Description Discards the current grid and rebuilds the week from the group's subject quotas.
// @Tags Schedule
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/schedule/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	result, err := h.schedules.Generate(c.Request.Context(), groupID)
	if h.metrics != nil {
		placed := 0
		if result != nil {
			placed = result.PlacedCount
		}
		h.metrics.ObserveGeneration(placed, time.Since(start), err)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// AddLesson godoc
// @Summary Place a lesson at an empty cell
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body dto.AddLessonRequest true "Lesson payload"
// @Success 201 {object} response.Envelope
// @Router /groups/{id}/schedule/lessons [post]
func (h *ScheduleHandler) AddLesson(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AddLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	lesson, err := h.schedules.AddLesson(c.Request.Context(), groupID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lesson)
}

// DeleteLesson godoc
// @Summary Clear a grid cell
// @Tags Schedule
// @Produce json
// @Param id path int true "Group ID"
// @Param day query int true "Day (0-6)"
// @Param time_slot query int true "Slot (0-3)"
// @Success 204
// @Router /groups/{id}/schedule/lessons [delete]
func (h *ScheduleHandler) DeleteLesson(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	day, err := intQuery(c, "day")
	if err != nil {
		response.Error(c, err)
		return
	}
	slot, err := intQuery(c, "time_slot")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.schedules.DeleteLesson(c.Request.Context(), groupID, day, slot); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ReplaceLesson godoc
// @Summary Replace the subject occupying a cell
// @Description Swaps the lesson in one step; on failure the cell keeps its current occupant.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body dto.ReplaceLessonRequest true "Lesson payload"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/schedule/lessons [put]
func (h *ScheduleHandler) ReplaceLesson(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ReplaceLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	lesson, err := h.schedules.ReplaceLesson(c.Request.Context(), groupID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lesson)
}

// Availability godoc
// @Summary Check whether a teacher may take a cell
// @Tags Schedule
// @Produce json
// @Param id path int true "Group ID"
// @Param teacher query string true "Teacher name"
// @Param day query int true "Day (0-6)"
// @Param time_slot query int true "Slot (0-3)"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/schedule/availability [get]
func (h *ScheduleHandler) Availability(c *gin.Context) {
	groupID, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	day, err := intQuery(c, "day")
	if err != nil {
		response.Error(c, err)
		return
	}
	slot, err := intQuery(c, "time_slot")
	if err != nil {
		response.Error(c, err)
		return
	}
	verdict, err := h.schedules.CheckAvailability(c.Request.Context(), groupID, dto.AvailabilityQuery{
		Teacher:  c.Query("teacher"),
		Day:      day,
		TimeSlot: slot,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, verdict)
}
