package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/models"
	"github.com/classsync/classsync-api/internal/timetable"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
)

type adjustmentEntityReader interface {
	FindTeacherByName(ctx context.Context, name string) (*models.Teacher, error)
	FindRoomByName(ctx context.Context, name string) (*models.Room, error)
	ListRoomNames(ctx context.Context) ([]string, error)
	ListQualifications(ctx context.Context) (map[string][]string, error)
}

type adjustmentEntryReader interface {
	ListDetailed(ctx context.Context) ([]models.ScheduleEntryDetail, error)
	FindDetailedByID(ctx context.Context, id string) (*models.ScheduleEntryDetail, error)
}

type overrideWriter interface {
	Create(ctx context.Context, o *models.ScheduleOverride) error
}

// AdjustmentService repairs the published timetable around teacher absences:
// it proposes substitute or reschedule options and turns a chosen option into
// a dated override without mutating the base schedule.
type AdjustmentService struct {
	entities  adjustmentEntityReader
	entries   adjustmentEntryReader
	overrides overrideWriter
	adjuster  *timetable.Adjuster
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewAdjustmentService wires adjustment dependencies.
func NewAdjustmentService(
	entities adjustmentEntityReader,
	entries adjustmentEntryReader,
	overrides overrideWriter,
	adjuster *timetable.Adjuster,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
) *AdjustmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdjustmentService{
		entities:  entities,
		entries:   entries,
		overrides: overrides,
		adjuster:  adjuster,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
	}
}

// FindSolutions reports every class the named teacher would miss in the
// leave window, each with its candidate repairs. A teacher with no classes
// yields an empty report, not an error.
func (s *AdjustmentService) FindSolutions(ctx context.Context, req dto.TeacherLeaveRequest) (*dto.FindSolutionsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endDate must not precede startDate")
	}

	if _, err := s.entities.FindTeacherByName(ctx, req.TeacherName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	details, err := s.entries.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load committed entries")
	}
	qualified, err := s.entities.ListQualifications(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load qualifications")
	}
	rooms, err := s.entities.ListRoomNames(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	entries := make([]timetable.Entry, 0, len(details))
	for _, d := range details {
		entries = append(entries, detailToEngineEntry(d))
	}
	started := time.Now()
	conflicts := s.adjuster.Remediate(req.TeacherName, entries, qualified, rooms)
	s.metrics.ObserveEngineRun("adjuster", time.Since(started))

	resp := &dto.FindSolutionsResponse{Solutions: make([]dto.ConflictReport, 0, len(conflicts))}
	for _, c := range conflicts {
		report := dto.ConflictReport{
			ConflictEntryID: c.EntryID,
			OriginalClass:   c.OriginalClass,
			Solutions:       make([]dto.SolutionOption, 0, len(c.Solutions)),
		}
		for _, sol := range c.Solutions {
			report.Solutions = append(report.Solutions, dto.SolutionOption{
				Type:        sol.Type,
				Details:     sol.Details,
				NewTeacher:  sol.NewTeacher,
				NewDay:      sol.NewDay,
				NewTimeSlot: sol.NewTimeSlot,
				NewRoom:     sol.NewRoom,
			})
		}
		resp.Solutions = append(resp.Solutions, report)
	}

	s.logger.Info("adjustment solutions computed",
		zap.String("teacher", req.TeacherName),
		zap.Int("conflicts", len(conflicts)))
	return resp, nil
}

// ApplySolution records one chosen repair as a dated override on the
// affected entry. Date defaults to today.
func (s *AdjustmentService) ApplySolution(ctx context.Context, req dto.ApplySolutionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	detail, err := s.entries.FindDetailedByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}

	override := &models.ScheduleOverride{
		OriginalEntryID: req.EntryID,
		OverrideDate:    date,
		ChangeType:      req.Solution.Type,
	}
	switch req.Solution.Type {
	case models.OverrideSubstitute:
		if req.Solution.NewTeacher == "" {
			return appErrors.Clone(appErrors.ErrValidation, "a substitute needs newTeacher")
		}
		teacher, err := s.entities.FindTeacherByName(ctx, req.Solution.NewTeacher)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "substitute teacher not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load substitute teacher")
		}
		override.NewTeacherID = &teacher.ID
	case models.OverrideReschedule:
		if req.Solution.NewDay == "" || req.Solution.NewTimeSlot == "" || req.Solution.NewRoom == "" {
			return appErrors.Clone(appErrors.ErrValidation, "a reschedule needs newDay, newTimeSlot and newRoom")
		}
		room, err := s.entities.FindRoomByName(ctx, req.Solution.NewRoom)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "target room not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load target room")
		}
		override.NewRoomID = &room.ID
		override.NewDay = &req.Solution.NewDay
		override.NewTimeSlot = &req.Solution.NewTimeSlot
		// The class keeps its teacher when it moves.
		override.NewTeacherID = &detail.TeacherID
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown solution type")
	}

	if err := s.overrides.Create(ctx, override); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record override")
	}
	s.logger.Info("schedule override applied",
		zap.String("entry_id", req.EntryID),
		zap.String("change_type", req.Solution.Type),
		zap.Time("date", date))
	return nil
}
