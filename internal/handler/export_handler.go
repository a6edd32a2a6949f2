package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/service"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
	"github.com/classsync/classsync-api/pkg/response"
)

type exporter interface {
	Timetable(ctx context.Context, sectionName, format string) (*service.ExportFile, error)
	SeatingChart(req dto.SeatingExportRequest, format string) (*service.ExportFile, error)
}

// ExportHandler serves timetable and seating chart downloads.
type ExportHandler struct {
	service exporter
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Timetable godoc
// @Summary Download a section's committed timetable
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param sectionName path string true "Section name"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /export/timetable/{sectionName} [get]
func (h *ExportHandler) Timetable(c *gin.Context) {
	file, err := h.service.Timetable(c.Request.Context(), c.Param("sectionName"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, file)
}

// SeatingChart godoc
// @Summary Download a computed seating arrangement
// @Tags Exports
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param payload body dto.SeatingExportRequest true "Arrangement to render"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /export/seating [post]
func (h *ExportHandler) SeatingChart(c *gin.Context) {
	var req dto.SeatingExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	file, err := h.service.SeatingChart(req, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveDownload(c, file)
}

func serveDownload(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Payload)
}
