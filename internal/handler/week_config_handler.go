package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelaskita/timetable/internal/service"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
	"github.com/kelaskita/timetable/pkg/response"
)

// WeekConfigHandler exposes the single active week shape the solver reads
// at solve time (spec §3's Config).
type WeekConfigHandler struct {
	service *service.WeekConfigService
}

// NewWeekConfigHandler constructs a week config handler.
func NewWeekConfigHandler(svc *service.WeekConfigService) *WeekConfigHandler {
	return &WeekConfigHandler{service: svc}
}

// Get godoc
// @Summary Get the active week configuration
// @Tags WeekConfig
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /week-config [get]
func (h *WeekConfigHandler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}

// Upsert godoc
// @Summary Replace the active week configuration
// @Tags WeekConfig
// @Accept json
// @Produce json
// @Param payload body service.UpsertWeekConfigRequest true "Week configuration payload"
// @Success 200 {object} response.Envelope
// @Router /week-config [put]
func (h *WeekConfigHandler) Upsert(c *gin.Context) {
	var req service.UpsertWeekConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	cfg, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg, nil)
}
