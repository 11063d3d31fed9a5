package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelaskita/timetable/internal/dto"
	"github.com/kelaskita/timetable/internal/service"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
	"github.com/kelaskita/timetable/pkg/response"
)

type scheduleGenerator interface {
	Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error)
	Persist(ctx context.Context, runID string) (*dto.PersistResponse, error)
}

// ScheduleGeneratorHandler exposes the solve/persist endpoints of the
// timetable generator (spec §4.5-§4.7).
type ScheduleGeneratorHandler struct {
	service scheduleGenerator
}

// NewScheduleGeneratorHandler constructs the handler.
func NewScheduleGeneratorHandler(svc *service.ScheduleGeneratorService) *ScheduleGeneratorHandler {
	return &ScheduleGeneratorHandler{service: svc}
}

// Solve godoc
// @Summary Run the solver against the current inputs
// @Description Loads a snapshot, solves it under the given or stored tuning, and caches the outcome without writing it. Inspect the response's status before calling persist.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Param payload body dto.SolveRequest false "Tuning overrides"
// @Success 200 {object} response.Envelope
// @Router /schedules/solve [post]
func (h *ScheduleGeneratorHandler) Solve(c *gin.Context) {
	var req dto.SolveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid solve payload"))
			return
		}
	}
	result, err := h.service.Solve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Persist godoc
// @Summary Write a previously solved run to the schedule tables
// @Tags Scheduler
// @Produce json
// @Param runId path string true "Run ID returned by /schedules/solve"
// @Success 200 {object} response.Envelope
// @Router /schedules/solve/{runId}/persist [post]
func (h *ScheduleGeneratorHandler) Persist(c *gin.Context) {
	result, err := h.service.Persist(c.Request.Context(), c.Param("runId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
