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

type seatingArranger interface {
	Arrange(ctx context.Context, req dto.ExamSeatingRequest) (*dto.ExamSeatingResponse, error)
}

// SeatingHandler exposes the exam seating endpoint.
type SeatingHandler struct {
	service seatingArranger
}

// NewSeatingHandler constructs the handler.
func NewSeatingHandler(svc *service.SeatingService) *SeatingHandler {
	return &SeatingHandler{service: svc}
}

// Generate godoc
// @Summary Compute an exam seating arrangement
// @Description Minimises same-branch adjacency across the given rooms. Returns 422 when the roster exceeds capacity or the balance constraints cannot be met.
// @Tags Seating
// @Accept json
// @Produce json
// @Param payload body dto.ExamSeatingRequest true "Roster and rooms"
// @Success 200 {object} response.Envelope
// @Router /generate_exam_seating [post]
func (h *SeatingHandler) Generate(c *gin.Context) {
	var req dto.ExamSeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seating payload"))
		return
	}
	result, err := h.service.Arrange(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
