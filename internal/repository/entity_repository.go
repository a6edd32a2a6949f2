package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classsync/classsync-api/internal/models"
)

// EntityRepository manages the named reference entities the timetable hangs
// off: teachers, courses, rooms, sections and the teacher-course
// qualification relation.
type EntityRepository struct {
	db *sqlx.DB
}

// NewEntityRepository constructs an EntityRepository.
func NewEntityRepository(db *sqlx.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func getOrCreateNamed(ctx context.Context, q sqlx.ExtContext, table, name string) (string, error) {
	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`, table)
	var id string
	if err := sqlx.GetContext(ctx, q, &id, query, uuid.NewString(), name, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("get or create %s: %w", table, err)
	}
	return id, nil
}

// GetOrCreateTeacherTx resolves a teacher name to its id, creating the row
// on first sight. The Tx variants run inside a schedule-save transaction.
func (r *EntityRepository) GetOrCreateTeacherTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error) {
	return getOrCreateNamed(ctx, tx, "teachers", name)
}

// GetOrCreateCourseTx resolves a course name to its id.
func (r *EntityRepository) GetOrCreateCourseTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error) {
	return getOrCreateNamed(ctx, tx, "courses", name)
}

// GetOrCreateRoomTx resolves a room name to its id.
func (r *EntityRepository) GetOrCreateRoomTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error) {
	return getOrCreateNamed(ctx, tx, "rooms", name)
}

// GetOrCreateSectionTx resolves a section name to its id.
func (r *EntityRepository) GetOrCreateSectionTx(ctx context.Context, tx *sqlx.Tx, name string) (string, error) {
	return getOrCreateNamed(ctx, tx, "sections", name)
}

// AddQualificationTx records that a teacher delivers a course. Saving a
// schedule grows the relation and never shrinks it.
func (r *EntityRepository) AddQualificationTx(ctx context.Context, tx *sqlx.Tx, teacherID, courseID string) error {
	const query = `INSERT INTO teacher_courses (teacher_id, course_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := tx.ExecContext(ctx, query, teacherID, courseID); err != nil {
		return fmt.Errorf("add qualification: %w", err)
	}
	return nil
}

// FindTeacherByName fetches a teacher by exact name.
func (r *EntityRepository) FindTeacherByName(ctx context.Context, name string) (*models.Teacher, error) {
	const query = `SELECT id, name, created_at FROM teachers WHERE name = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, name); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindRoomByName fetches a room by exact name.
func (r *EntityRepository) FindRoomByName(ctx context.Context, name string) (*models.Room, error) {
	const query = `SELECT id, name, created_at FROM rooms WHERE name = $1`
	var room models.Room
	if err := r.db.GetContext(ctx, &room, query, name); err != nil {
		return nil, err
	}
	return &room, nil
}

// FindSectionByName fetches a section by exact name.
func (r *EntityRepository) FindSectionByName(ctx context.Context, name string) (*models.Section, error) {
	const query = `SELECT id, name, created_at FROM sections WHERE name = $1`
	var section models.Section
	if err := r.db.GetContext(ctx, &section, query, name); err != nil {
		return nil, err
	}
	return &section, nil
}

// ListRoomNames returns every known room name.
func (r *EntityRepository) ListRoomNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM rooms ORDER BY name`
	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return names, nil
}

type qualificationRow struct {
	CourseName  string `db:"course_name"`
	TeacherName string `db:"teacher_name"`
}

// ListQualifications maps each course name to the teachers qualified to
// deliver it.
func (r *EntityRepository) ListQualifications(ctx context.Context) (map[string][]string, error) {
	const query = `SELECT c.name AS course_name, t.name AS teacher_name
		FROM teacher_courses tc
		JOIN teachers t ON t.id = tc.teacher_id
		JOIN courses c ON c.id = tc.course_id
		ORDER BY c.name, t.name`
	var rows []qualificationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list qualifications: %w", err)
	}
	out := make(map[string][]string, len(rows))
	for _, row := range rows {
		out[row.CourseName] = append(out[row.CourseName], row.TeacherName)
	}
	return out, nil
}
