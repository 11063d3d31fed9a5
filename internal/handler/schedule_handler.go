package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kelaskita/timetable/internal/models"
	"github.com/kelaskita/timetable/internal/service"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
	"github.com/kelaskita/timetable/pkg/response"
)

// ScheduleHandler exposes read-only schedule query endpoints. Writes only
// happen through the solver's solve/persist pipeline.
type ScheduleHandler struct {
	service *service.ScheduleQueryService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.ScheduleQueryService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List schedule entries
// @Tags Schedules
// @Produce json
// @Param course_id query string false "Filter by course"
// @Param line query int false "Filter by group line (0-based)"
// @Param teacher_id query string false "Filter by teacher"
// @Param day query int false "Filter by day index"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var filter models.ScheduleFilter
	filter.CourseID = c.Query("course_id")
	filter.TeacherID = c.Query("teacher_id")
	if line, err := strconv.Atoi(c.Query("line")); err == nil {
		filter.Line = &line
	}
	if day, err := strconv.Atoi(c.Query("day")); err == nil {
		filter.Day = &day
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	entries, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}

// ListByGroup godoc
// @Summary List a group's full week
// @Tags Schedules
// @Produce json
// @Param courseId path string true "Course ID"
// @Param line path int true "Group line (0-based)"
// @Success 200 {object} response.Envelope
// @Router /courses/{courseId}/groups/{line}/schedule [get]
func (h *ScheduleHandler) ListByGroup(c *gin.Context) {
	line, err := strconv.Atoi(c.Param("line"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "line must be an integer"))
		return
	}
	entries, err := h.service.ListByGroup(c.Request.Context(), c.Param("courseId"), line)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// ListByTeacher godoc
// @Summary List a teacher's full week
// @Tags Schedules
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/schedule [get]
func (h *ScheduleHandler) ListByTeacher(c *gin.Context) {
	entries, err := h.service.ListByTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
