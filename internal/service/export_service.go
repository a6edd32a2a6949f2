package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/models"
	"github.com/classsync/classsync-api/internal/timetable"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
	"github.com/classsync/classsync-api/pkg/export"
)

type exportEntryReader interface {
	ListDetailedBySection(ctx context.Context, sectionName string) ([]models.ScheduleEntryDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderSeatingChart(grids []export.SeatGrid, title string) ([]byte, error)
}

type exportArchiver interface {
	Archive(filename string, payload []byte) error
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders committed timetables and seating charts as CSV or
// PDF downloads.
type ExportService struct {
	entries exportEntryReader
	csv     csvRenderer
	pdf     pdfRenderer
	archive exportArchiver
	logger  *zap.Logger
}

// NewExportService constructs an ExportService. archive may be nil; rendered
// documents are then served without keeping a copy.
func NewExportService(entries exportEntryReader, csv csvRenderer, pdf pdfRenderer, archive exportArchiver, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{entries: entries, csv: csv, pdf: pdf, archive: archive, logger: logger}
}

// Timetable renders one section's committed schedule.
func (s *ExportService) Timetable(ctx context.Context, sectionName, format string) (*ExportFile, error) {
	details, err := s.entries.ListDetailedBySection(ctx, sectionName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section schedule")
	}
	if len(details) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no saved schedule for section")
	}

	sortEntriesByWeek(details)
	rows := make([]map[string]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, map[string]string{
			"Day":       d.Day,
			"Time Slot": d.TimeSlot,
			"Course":    d.CourseName,
			"Faculty":   d.TeacherName,
			"Room":      d.RoomName,
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Day", "Time Slot", "Course", "Faculty", "Room"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Timetable %s", sectionName)

	file, err := s.render(dataset, title, fmt.Sprintf("timetable_%s", sanitizeFilename(sectionName)), format)
	if err != nil {
		return nil, err
	}
	s.archiveFile(file)
	return file, nil
}

// SeatingChart renders a previously computed arrangement. CSV lists one
// assignment per row, PDF draws each room's grid.
func (s *ExportService) SeatingChart(req dto.SeatingExportRequest, format string) (*ExportFile, error) {
	title := req.Title
	if title == "" {
		title = "Exam Seating"
	}

	switch strings.ToLower(format) {
	case "csv", "":
		rows := make([]map[string]string, 0, len(req.Assignments))
		for _, a := range req.Assignments {
			rows = append(rows, map[string]string{
				"Student": a.Student.Name,
				"Roll No": a.Student.RollNo,
				"Branch":  a.Student.Branch,
				"Room":    a.RoomName,
				"Row":     fmt.Sprintf("%d", a.Row),
				"Col":     fmt.Sprintf("%d", a.Col),
			})
		}
		dataset := export.Dataset{
			Headers: []string{"Student", "Roll No", "Branch", "Room", "Row", "Col"},
			Rows:    rows,
		}
		file, err := s.render(dataset, title, "seating_chart", "csv")
		if err != nil {
			return nil, err
		}
		s.archiveFile(file)
		return file, nil
	case "pdf":
		grids, err := buildSeatGrids(req)
		if err != nil {
			return nil, err
		}
		payload, err := s.pdf.RenderSeatingChart(grids, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		file := &ExportFile{
			Filename:    exportFilename("seating_chart", "pdf"),
			ContentType: "application/pdf",
			Payload:     payload,
		}
		s.archiveFile(file)
		return file, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

// archiveFile keeps a best-effort copy of the rendered document. Failures
// never block the download.
func (s *ExportService) archiveFile(file *ExportFile) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Archive(file.Filename, file.Payload); err != nil {
		s.logger.Warn("failed to archive export", zap.String("filename", file.Filename), zap.Error(err))
	}
}

func (s *ExportService) render(dataset export.Dataset, title, base, format string) (*ExportFile, error) {
	switch strings.ToLower(format) {
	case "csv", "":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Filename: exportFilename(base, "csv"), ContentType: "text/csv", Payload: payload}, nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Filename: exportFilename(base, "pdf"), ContentType: "application/pdf", Payload: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func buildSeatGrids(req dto.SeatingExportRequest) ([]export.SeatGrid, error) {
	byRoom := make(map[string]*export.SeatGrid, len(req.Rooms))
	grids := make([]export.SeatGrid, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		cells := make([][]string, r.Rows)
		for i := range cells {
			cells[i] = make([]string, r.Cols)
		}
		grids = append(grids, export.SeatGrid{Room: r.Name, Cells: cells})
		byRoom[r.Name] = &grids[len(grids)-1]
	}
	for _, a := range req.Assignments {
		grid, ok := byRoom[a.RoomName]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("assignment references unknown room %q", a.RoomName))
		}
		if a.Row < 1 || a.Row > len(grid.Cells) || a.Col < 1 || a.Col > len(grid.Cells[0]) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("assignment out of bounds for room %q", a.RoomName))
		}
		grid.Cells[a.Row-1][a.Col-1] = a.Student.Name
	}
	return grids, nil
}

func sortEntriesByWeek(details []models.ScheduleEntryDetail) {
	dayOrder := make(map[string]int, 5)
	for i, d := range timetable.Days() {
		dayOrder[d] = i
	}
	slotOrder := make(map[string]int, 9)
	for i, s := range timetable.AllTimeSlots() {
		slotOrder[s] = i
	}
	sort.SliceStable(details, func(a, b int) bool {
		if dayOrder[details[a].Day] != dayOrder[details[b].Day] {
			return dayOrder[details[a].Day] < dayOrder[details[b].Day]
		}
		return slotOrder[details[a].TimeSlot] < slotOrder[details[b].TimeSlot]
	})
}

func exportFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, time.Now().UTC().Format("20060102_150405"), ext)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
