package service

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classsync/classsync-api/internal/dto"
	"github.com/classsync/classsync-api/internal/models"
	"github.com/classsync/classsync-api/internal/timetable"
	appErrors "github.com/classsync/classsync-api/pkg/errors"
)

type stubAdjustmentEntities struct {
	teachers map[string]*models.Teacher
	rooms    map[string]*models.Room
	quals    map[string][]string
}

func (s *stubAdjustmentEntities) FindTeacherByName(_ context.Context, name string) (*models.Teacher, error) {
	if t, ok := s.teachers[name]; ok {
		return t, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdjustmentEntities) FindRoomByName(_ context.Context, name string) (*models.Room, error) {
	if r, ok := s.rooms[name]; ok {
		return r, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAdjustmentEntities) ListRoomNames(context.Context) ([]string, error) {
	names := make([]string, 0, len(s.rooms))
	for name := range s.rooms {
		names = append(names, name)
	}
	return names, nil
}

func (s *stubAdjustmentEntities) ListQualifications(context.Context) (map[string][]string, error) {
	return s.quals, nil
}

type stubAdjustmentEntries struct {
	detailed []models.ScheduleEntryDetail
}

func (s *stubAdjustmentEntries) ListDetailed(context.Context) ([]models.ScheduleEntryDetail, error) {
	return s.detailed, nil
}

func (s *stubAdjustmentEntries) FindDetailedByID(_ context.Context, id string) (*models.ScheduleEntryDetail, error) {
	for _, d := range s.detailed {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

type stubOverrideWriter struct {
	created []models.ScheduleOverride
}

func (s *stubOverrideWriter) Create(_ context.Context, o *models.ScheduleOverride) error {
	s.created = append(s.created, *o)
	return nil
}

func newAdjustmentFixture() (*AdjustmentService, *stubAdjustmentEntities, *stubAdjustmentEntries, *stubOverrideWriter) {
	entities := &stubAdjustmentEntities{
		teachers: map[string]*models.Teacher{},
		rooms:    map[string]*models.Room{},
		quals:    map[string][]string{},
	}
	entries := &stubAdjustmentEntries{}
	overrides := &stubOverrideWriter{}
	adjuster := timetable.NewAdjuster(rand.New(rand.NewSource(5)), 3)
	return NewAdjustmentService(entities, entries, overrides, adjuster, nil, nil, nil), entities, entries, overrides
}

func TestAdjustmentServiceFindSolutionsUnknownTeacher(t *testing.T) {
	svc, _, _, _ := newAdjustmentFixture()

	_, err := svc.FindSolutions(context.Background(), dto.TeacherLeaveRequest{
		TeacherName: "Ghost", StartDate: "2026-09-01", EndDate: "2026-09-02",
	})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestAdjustmentServiceFindSolutionsRejectsInvertedRange(t *testing.T) {
	svc, entities, _, _ := newAdjustmentFixture()
	entities.teachers["Rao"] = &models.Teacher{ID: "t1", Name: "Rao"}

	_, err := svc.FindSolutions(context.Background(), dto.TeacherLeaveRequest{
		TeacherName: "Rao", StartDate: "2026-09-02", EndDate: "2026-09-01",
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestAdjustmentServiceFindSolutions(t *testing.T) {
	svc, entities, entries, _ := newAdjustmentFixture()
	entities.teachers["Rao"] = &models.Teacher{ID: "t1", Name: "Rao"}
	entities.rooms["R1"] = &models.Room{ID: "r1", Name: "R1"}
	entities.quals["Maths"] = []string{"Rao", "Iyer"}
	entries.detailed = []models.ScheduleEntryDetail{
		{ID: "e1", SectionName: "CS-A", Day: "Monday", TimeSlot: "9:00 AM", CourseName: "Maths", TeacherName: "Rao", RoomName: "R1"},
	}

	resp, err := svc.FindSolutions(context.Background(), dto.TeacherLeaveRequest{
		TeacherName: "Rao", StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	require.NoError(t, err)
	require.Len(t, resp.Solutions, 1)
	report := resp.Solutions[0]
	assert.Equal(t, "e1", report.ConflictEntryID)
	assert.Contains(t, report.OriginalClass, "Maths")

	types := map[string]int{}
	for _, sol := range report.Solutions {
		types[sol.Type]++
	}
	assert.Equal(t, 1, types[models.OverrideSubstitute])
	assert.Equal(t, 3, types[models.OverrideReschedule])
}

func TestAdjustmentServiceApplySubstitute(t *testing.T) {
	svc, entities, entries, overrides := newAdjustmentFixture()
	entities.teachers["Iyer"] = &models.Teacher{ID: "t2", Name: "Iyer"}
	entries.detailed = []models.ScheduleEntryDetail{{ID: "e1", SectionName: "CS-A"}}

	err := svc.ApplySolution(context.Background(), dto.ApplySolutionRequest{
		EntryID:  "e1",
		Solution: dto.SolutionOption{Type: models.OverrideSubstitute, NewTeacher: "Iyer"},
		Date:     "2026-09-01",
	})
	require.NoError(t, err)
	require.Len(t, overrides.created, 1)
	o := overrides.created[0]
	assert.Equal(t, "e1", o.OriginalEntryID)
	assert.Equal(t, models.OverrideSubstitute, o.ChangeType)
	require.NotNil(t, o.NewTeacherID)
	assert.Equal(t, "t2", *o.NewTeacherID)
	assert.Nil(t, o.NewRoomID)
	assert.Equal(t, "2026-09-01", o.OverrideDate.Format("2006-01-02"))
}

func TestAdjustmentServiceApplyReschedule(t *testing.T) {
	svc, entities, entries, overrides := newAdjustmentFixture()
	entities.rooms["R2"] = &models.Room{ID: "r2", Name: "R2"}
	entries.detailed = []models.ScheduleEntryDetail{{ID: "e1", SectionName: "CS-A", TeacherID: "t1"}}

	err := svc.ApplySolution(context.Background(), dto.ApplySolutionRequest{
		EntryID: "e1",
		Solution: dto.SolutionOption{
			Type: models.OverrideReschedule, NewDay: "Tuesday", NewTimeSlot: "2:00 PM", NewRoom: "R2",
		},
	})
	require.NoError(t, err)
	require.Len(t, overrides.created, 1)
	o := overrides.created[0]
	assert.Equal(t, models.OverrideReschedule, o.ChangeType)
	require.NotNil(t, o.NewTeacherID)
	assert.Equal(t, "t1", *o.NewTeacherID)
	require.NotNil(t, o.NewRoomID)
	assert.Equal(t, "r2", *o.NewRoomID)
	require.NotNil(t, o.NewDay)
	assert.Equal(t, "Tuesday", *o.NewDay)
	require.NotNil(t, o.NewTimeSlot)
	assert.Equal(t, "2:00 PM", *o.NewTimeSlot)
}

func TestAdjustmentServiceApplyUnknownEntry(t *testing.T) {
	svc, entities, _, _ := newAdjustmentFixture()
	entities.teachers["Iyer"] = &models.Teacher{ID: "t2", Name: "Iyer"}

	err := svc.ApplySolution(context.Background(), dto.ApplySolutionRequest{
		EntryID:  "ghost",
		Solution: dto.SolutionOption{Type: models.OverrideSubstitute, NewTeacher: "Iyer"},
	})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestAdjustmentServiceApplyRescheduleMissingTarget(t *testing.T) {
	svc, _, entries, _ := newAdjustmentFixture()
	entries.detailed = []models.ScheduleEntryDetail{{ID: "e1", SectionName: "CS-A"}}

	err := svc.ApplySolution(context.Background(), dto.ApplySolutionRequest{
		EntryID:  "e1",
		Solution: dto.SolutionOption{Type: models.OverrideReschedule, NewDay: "Tuesday"},
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}
