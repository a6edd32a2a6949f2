package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/service"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
	"github.com/classsync/classsync-api/pkg/response"
)

type timetableManager interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Save(ctx context.Context, req dto.SaveScheduleRequest) error
	ListSaved(ctx context.Context) (map[string][]dto.SavedEntry, error)
	Delete(ctx context.Context, sectionName string) error
	ClearAll(ctx context.Context) error
	DailyView(ctx context.Context, sectionName, viewDate string) (*dto.DailyViewResponse, error)
}

// TimetableHandler exposes timetable generation and persistence endpoints.
type TimetableHandler struct {
	service timetableManager
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Generate godoc
// @Summary Generate a weekly timetable preview
// @Description Builds a grid for the requested courses without persisting anything. Courses whose hours could not all be placed are listed under unplaced.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Save godoc
// @Summary Commit a timetable for a section
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SaveScheduleRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Router /save_schedule [post]
func (h *TimetableHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	if err := h.service.Save(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"section": req.SectionName})
}

// ListSaved godoc
// @Summary List committed timetables grouped by section
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /saved_schedules [get]
func (h *TimetableHandler) ListSaved(c *gin.Context) {
	result, err := h.service.ListSaved(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete one section's committed timetable
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.DeleteScheduleRequest true "Delete payload"
// @Success 204
// @Router /delete_schedule [post]
func (h *TimetableHandler) Delete(c *gin.Context) {
	var req dto.DeleteScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid delete payload"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), req.SectionName); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClearAll godoc
// @Summary Delete every committed timetable
// @Tags Timetable
// @Success 204
// @Router /clear_all_schedules [post]
func (h *TimetableHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DailyView godoc
// @Summary View a section's schedule for one date with overrides applied
// @Tags Timetable
// @Produce json
// @Param sectionName path string true "Section name"
// @Param viewDate query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope
// @Router /schedule/view/{sectionName} [get]
func (h *TimetableHandler) DailyView(c *gin.Context) {
	result, err := h.service.DailyView(c.Request.Context(), c.Param("sectionName"), c.Query("viewDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
