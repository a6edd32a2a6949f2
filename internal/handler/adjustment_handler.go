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

type adjustmentManager interface {
	FindSolutions(ctx context.Context, req dto.TeacherLeaveRequest) (*dto.FindSolutionsResponse, error)
	ApplySolution(ctx context.Context, req dto.ApplySolutionRequest) error
}

// AdjustmentHandler exposes absence remediation endpoints.
type AdjustmentHandler struct {
	service adjustmentManager
}

// NewAdjustmentHandler constructs the handler.
func NewAdjustmentHandler(svc *service.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{service: svc}
}

// FindSolutions godoc
// @Summary Find repairs for a teacher's leave window
// @Description Lists every affected class with its substitute and reschedule options. A class with no options is reported with an empty solutions list.
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param payload body dto.TeacherLeaveRequest true "Leave window"
// @Success 200 {object} response.Envelope
// @Router /adjustments/find-solutions [post]
func (h *AdjustmentHandler) FindSolutions(c *gin.Context) {
	var req dto.TeacherLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave payload"))
		return
	}
	result, err := h.service.FindSolutions(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ApplySolution godoc
// @Summary Apply one chosen repair as a dated override
// @Tags Adjustments
// @Accept json
// @Produce json
// @Param payload body dto.ApplySolutionRequest true "Chosen solution"
// @Success 201 {object} response.Envelope
// @Router /adjustments/apply-solution [post]
func (h *AdjustmentHandler) ApplySolution(c *gin.Context) {
	var req dto.ApplySolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid solution payload"))
		return
	}
	if err := h.service.ApplySolution(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"entryId": req.EntryID})
}
