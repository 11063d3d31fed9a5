package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelaskita/timetable/internal/service"
	appErrors "github.com/kelaskita/timetable/pkg/errors"
	"github.com/kelaskita/timetable/pkg/response"
)

// SubjectGroupHandler exposes CRUD endpoints for bundles of alternative
// subjects that must share a timeslot (spec §3's SubjectGroup).
type SubjectGroupHandler struct {
	service *service.SubjectGroupService
}

// NewSubjectGroupHandler constructs a subject group handler.
func NewSubjectGroupHandler(svc *service.SubjectGroupService) *SubjectGroupHandler {
	return &SubjectGroupHandler{service: svc}
}

// List godoc
// @Summary List subject groups
// @Tags SubjectGroups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subject-groups [get]
func (h *SubjectGroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}

// Get godoc
// @Summary Get subject group by id, with members resolved
// @Tags SubjectGroups
// @Produce json
// @Param id path string true "Subject group ID"
// @Success 200 {object} response.Envelope
// @Router /subject-groups/{id} [get]
func (h *SubjectGroupHandler) Get(c *gin.Context) {
	group, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// Create godoc
// @Summary Create subject group
// @Tags SubjectGroups
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectGroupRequest true "Subject group payload"
// @Success 201 {object} response.Envelope
// @Router /subject-groups [post]
func (h *SubjectGroupHandler) Create(c *gin.Context) {
	var req service.CreateSubjectGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// Update godoc
// @Summary Rename subject group
// @Tags SubjectGroups
// @Accept json
// @Produce json
// @Param id path string true "Subject group ID"
// @Param payload body service.UpdateSubjectGroupRequest true "Subject group payload"
// @Success 200 {object} response.Envelope
// @Router /subject-groups/{id} [put]
func (h *SubjectGroupHandler) Update(c *gin.Context) {
	var req service.UpdateSubjectGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group, nil)
}

// Delete godoc
// @Summary Delete subject group
// @Tags SubjectGroups
// @Produce json
// @Param id path string true "Subject group ID"
// @Success 204
// @Router /subject-groups/{id} [delete]
func (h *SubjectGroupHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
