package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/models"
	"github.com/classsync/classsync-api/internal/timetable"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
)

const savedSchedulesCacheKey = "classsync:saved_schedules"

type entityStore interface {
	GetOrCreateTeacherTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error)
	GetOrCreateCourseTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error)
	GetOrCreateRoomTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error)
	GetOrCreateSectionTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error)
	AddQualificationTx(ctx context.Context, tx *sqlx.Tx, teacherID, courseID string) error
	FindSectionByName(ctx context.Context, name string) (*models.Section, error)
}

type entryStore interface {
	Tx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	ListDetailed(ctx context.Context) ([]models.ScheduleEntryDetail, error)
	ListDetailedBySection(ctx context.Context, sectionName string) ([]models.ScheduleEntryDetail, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, entry *models.ScheduleEntry) error
	DeleteBySectionTx(ctx context.Context, tx *sqlx.Tx, sectionID string) error
	DeleteAll(ctx context.Context) error
}

type overrideReader interface {
	ListBySectionAndDate(ctx context.Context, sectionName string, date time.Time) ([]models.ScheduleOverrideDetail, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// TimetableConfig tunes timetable behaviour.
type TimetableConfig struct {
	CacheTTL time.Duration
	Metrics  *MetricsService
}

// TimetableService generates, persists and serves weekly section timetables.
type TimetableService struct {
	entities  entityStore
	entries   entryStore
	overrides overrideReader
	cache     cacheStore
	generator *timetable.Generator
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	cfg       TimetableConfig
}

// NewTimetableService wires timetable dependencies. cache may be nil when
// Redis is unavailable; caching then degrades to a no-op.
func NewTimetableService(
	entities entityStore,
	entries entryStore,
	overrides overrideReader,
	cache cacheStore,
	generator *timetable.Generator,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &TimetableService{
		entities:  entities,
		entries:   entries,
		overrides: overrides,
		cache:     cache,
		generator: generator,
		validator: validate,
		logger:    logger,
		metrics:   cfg.Metrics,
		cfg:       cfg,
	}
}

// Generate builds a fresh weekly grid for the requested courses without
// touching persistent state. Committed entries of other sections act as a
// conflict snapshot; the target section's own entries are excluded so a
// regeneration does not collide with itself.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	committed, err := s.entries.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load committed entries")
	}
	var existing []timetable.Entry
	for _, e := range committed {
		if req.SectionName != "" && e.SectionName == req.SectionName {
			continue
		}
		existing = append(existing, detailToEngineEntry(e))
	}

	courses := make([]timetable.CourseSpec, 0, len(req.Courses))
	for _, c := range req.Courses {
		courses = append(courses, timetable.CourseSpec{Name: c.Name, Hours: c.Hours, Faculty: c.Faculty})
	}

	section := req.SectionName
	if section == "" {
		section = "draft"
	}
	start := time.Now()
	res, err := s.generator.Build(timetable.GenerateInput{
		Section:           section,
		Courses:           courses,
		Rooms:             req.Rooms,
		IncludeLunchBreak: req.IncludeLunchBreak,
		Existing:          existing,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveEngineRun("generator", time.Since(start))

	schedule := make(map[string]map[string]dto.PlacementDetail, len(res.Grid))
	for day, row := range res.Grid {
		schedule[day] = make(map[string]dto.PlacementDetail, len(row))
		for slot, p := range row {
			schedule[day][slot] = dto.PlacementDetail{
				CourseName:  p.Course,
				FacultyName: p.Teacher,
				RoomName:    p.Room,
			}
		}
	}
	s.logger.Info("timetable generated",
		zap.String("section", section),
		zap.Int("unplaced", res.UnplacedCount))

	return &dto.GenerateTimetableResponse{Schedule: schedule, Unplaced: res.Unplaced}, nil
}

// Save commits a grid for a section in one transaction, replacing whatever
// the section had before. Teachers, courses and rooms are created on first
// sight and the teacher-course qualification relation grows with each saved
// pairing.
func (s *TimetableService) Save(ctx context.Context, req dto.SaveScheduleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	err := s.entries.Tx(ctx, func(tx *sqlx.Tx) error {
		sectionID, err := s.entities.GetOrCreateSectionTx(ctx, tx, req.SectionName)
		if err != nil {
			return err
		}
		if err := s.entries.DeleteBySectionTx(ctx, tx, sectionID); err != nil {
			return err
		}
		for day, row := range req.Schedule {
			for slot, p := range row {
				if p == nil {
					continue
				}
				courseID, err := s.entities.GetOrCreateCourseTx(ctx, tx, p.CourseName)
				if err != nil {
					return err
				}
				teacherID, err := s.entities.GetOrCreateTeacherTx(ctx, tx, p.FacultyName)
				if err != nil {
					return err
				}
				roomID, err := s.entities.GetOrCreateRoomTx(ctx, tx, p.RoomName)
				if err != nil {
					return err
				}
				if err := s.entities.AddQualificationTx(ctx, tx, teacherID, courseID); err != nil {
					return err
				}
				entry := &models.ScheduleEntry{
					SectionID: sectionID,
					Day:       day,
					TimeSlot:  slot,
					CourseID:  courseID,
					TeacherID: teacherID,
					RoomID:    roomID,
				}
				if err := s.entries.CreateTx(ctx, tx, entry); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save schedule")
	}

	s.invalidateCache(ctx)
	s.logger.Info("schedule saved", zap.String("section", req.SectionName))
	return nil
}

// ListSaved returns every committed timetable grouped by section name,
// served from cache when a fresh copy exists.
func (s *TimetableService) ListSaved(ctx context.Context) (map[string][]dto.SavedEntry, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, savedSchedulesCacheKey); err == nil {
			var cached map[string][]dto.SavedEntry
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				s.metrics.RecordCacheOperation(true)
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("schedule cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
	}

	details, err := s.entries.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	grouped := make(map[string][]dto.SavedEntry)
	for _, d := range details {
		grouped[d.SectionName] = append(grouped[d.SectionName], dto.SavedEntry{
			EntryID:     d.ID,
			Day:         d.Day,
			TimeSlot:    d.TimeSlot,
			CourseName:  d.CourseName,
			FacultyName: d.TeacherName,
			RoomName:    d.RoomName,
		})
	}

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(grouped); jsonErr == nil {
			if err := s.cache.Set(ctx, savedSchedulesCacheKey, string(payload), s.cfg.CacheTTL); err != nil {
				s.logger.Warn("schedule cache write failed", zap.Error(err))
			}
		}
	}
	return grouped, nil
}

// Delete removes one section's committed timetable and its overrides.
func (s *TimetableService) Delete(ctx context.Context, sectionName string) error {
	if sectionName == "" {
		return appErrors.Clone(appErrors.ErrValidation, "sectionName is required")
	}
	section, err := s.entities.FindSectionByName(ctx, sectionName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	err = s.entries.Tx(ctx, func(tx *sqlx.Tx) error {
		return s.entries.DeleteBySectionTx(ctx, tx, section.ID)
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}

	s.invalidateCache(ctx)
	s.logger.Info("schedule deleted", zap.String("section", sectionName))
	return nil
}

// ClearAll wipes every committed timetable across all sections.
func (s *TimetableService) ClearAll(ctx context.Context) error {
	if err := s.entries.DeleteAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear schedules")
	}
	s.invalidateCache(ctx)
	s.logger.Info("all schedules cleared")
	return nil
}

// DailyView renders a section's schedule for one calendar date: the base
// weekly entries plus the overrides dated that day. viewDate defaults to
// today and uses YYYY-MM-DD.
func (s *TimetableService) DailyView(ctx context.Context, sectionName, viewDate string) (*dto.DailyViewResponse, error) {
	if sectionName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "section name is required")
	}
	date := time.Now().UTC().Truncate(24 * time.Hour)
	if viewDate != "" {
		parsed, err := time.Parse("2006-01-02", viewDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "viewDate must be YYYY-MM-DD")
		}
		date = parsed
	}

	details, err := s.overrides.ListBySectionAndDate(ctx, sectionName, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load overrides")
	}

	resp := &dto.DailyViewResponse{Overrides: make([]dto.OverrideView, 0, len(details))}
	for _, d := range details {
		resp.Overrides = append(resp.Overrides, dto.OverrideView{
			OriginalEntryID: d.OriginalEntryID,
			ChangeType:      d.ChangeType,
			NewTeacher:      d.NewTeacherName,
			NewRoom:         d.NewRoomName,
			NewDay:          d.NewDay,
			NewTimeSlot:     d.NewTimeSlot,
			OriginalClass: dto.OriginalDetail{
				CourseName: d.OriginalCourse,
				Day:        d.OriginalDay,
				TimeSlot:   d.OriginalTimeSlot,
			},
		})
	}
	return resp, nil
}

func (s *TimetableService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, savedSchedulesCacheKey); err != nil {
		s.logger.Warn("schedule cache invalidation failed", zap.Error(err))
	}
}

func detailToEngineEntry(d models.ScheduleEntryDetail) timetable.Entry {
	return timetable.Entry{
		ID:       d.ID,
		Section:  d.SectionName,
		Day:      d.Day,
		TimeSlot: d.TimeSlot,
		Course:   d.CourseName,
		Teacher:  d.TeacherName,
		Room:     d.RoomName,
	}
}
