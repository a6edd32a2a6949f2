package repository

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classsync/classsync-api/internal/models"
)

func newEntryRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var entryDetailColumns = []string{
	"id", "section_id", "section_name", "day", "time_slot",
	"course_id", "course_name", "teacher_id", "teacher_name", "room_id", "room_name",
}

func TestEntryRepositoryListDetailed(t *testing.T) {
	db, mock, cleanup := newEntryRepoMock(t)
	defer cleanup()
	repo := NewEntryRepository(db)

	rows := sqlmock.NewRows(entryDetailColumns).
		AddRow("e1", "s1", "CS-A", "Monday", "9:00 AM", "c1", "Maths", "t1", "Rao", "r1", "R1").
		AddRow("e2", "s1", "CS-A", "Monday", "10:00 AM", "c2", "Physics", "t2", "Iyer", "r2", "R2")
	mock.ExpectQuery("SELECT e.id, e.section_id, s.name AS section_name").
		WillReturnRows(rows)

	entries, err := repo.ListDetailed(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Rao", entries[0].TeacherName)
	assert.Equal(t, "CS-A", entries[1].SectionName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepositoryListDetailedBySection(t *testing.T) {
	db, mock, cleanup := newEntryRepoMock(t)
	defer cleanup()
	repo := NewEntryRepository(db)

	rows := sqlmock.NewRows(entryDetailColumns).
		AddRow("e1", "s1", "CS-A", "Monday", "9:00 AM", "c1", "Maths", "t1", "Rao", "r1", "R1")
	mock.ExpectQuery("WHERE s.name = \\$1").
		WithArgs("CS-A").
		WillReturnRows(rows)

	entries, err := repo.ListDetailedBySection(context.Background(), "CS-A")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Maths", entries[0].CourseName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepositoryCreateTxAssignsID(t *testing.T) {
	db, mock, cleanup := newEntryRepoMock(t)
	defer cleanup()
	repo := NewEntryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schedule_entries").
		WithArgs(sqlmock.AnyArg(), "s1", "Monday", "9:00 AM", "c1", "t1", "r1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry := &models.ScheduleEntry{
		SectionID: "s1", Day: "Monday", TimeSlot: "9:00 AM",
		CourseID: "c1", TeacherID: "t1", RoomID: "r1",
	}
	err := repo.Tx(context.Background(), func(tx *sqlx.Tx) error {
		return repo.CreateTx(context.Background(), tx, entry)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepositoryDeleteBySectionTx(t *testing.T) {
	db, mock, cleanup := newEntryRepoMock(t)
	defer cleanup()
	repo := NewEntryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_overrides WHERE original_entry_id IN").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM schedule_entries WHERE section_id = \\$1").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	err := repo.Tx(context.Background(), func(tx *sqlx.Tx) error {
		return repo.DeleteBySectionTx(context.Background(), tx, "s1")
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepositoryTxRollsBackOnError(t *testing.T) {
	db, mock, cleanup := newEntryRepoMock(t)
	defer cleanup()
	repo := NewEntryRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.Tx(context.Background(), func(tx *sqlx.Tx) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryRepositoryDeleteAll(t *testing.T) {
	db, mock, cleanup := newEntryRepoMock(t)
	defer cleanup()
	repo := NewEntryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM schedule_overrides").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM schedule_entries").
		WillReturnResult(sqlmock.NewResult(0, 9))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteAll(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
