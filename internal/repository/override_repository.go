package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classsync/classsync-api/internal/models"
)

// OverrideRepository manages dated schedule exceptions.
type OverrideRepository struct {
	db *sqlx.DB
}

// NewOverrideRepository constructs an OverrideRepository.
func NewOverrideRepository(db *sqlx.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

// Create inserts one override.
func (r *OverrideRepository) Create(ctx context.Context, o *models.ScheduleOverride) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO schedule_overrides (id, original_entry_id, override_date, change_type, new_teacher_id, new_room_id, new_day, new_time_slot, created_at)
		VALUES (:id, :original_entry_id, :override_date, :change_type, :new_teacher_id, :new_room_id, :new_day, :new_time_slot, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, o); err != nil {
		return fmt.Errorf("create override: %w", err)
	}
	return nil
}

// ListBySectionAndDate returns the overrides active for a section on one
// calendar date, joined with the base entry context a daily view needs.
func (r *OverrideRepository) ListBySectionAndDate(ctx context.Context, sectionName string, date time.Time) ([]models.ScheduleOverrideDetail, error) {
	const query = `SELECT o.original_entry_id, o.change_type,
		nt.name AS new_teacher_name, nr.name AS new_room_name, o.new_day, o.new_time_slot,
		c.name AS original_course, e.day AS original_day, e.time_slot AS original_time_slot
		FROM schedule_overrides o
		JOIN schedule_entries e ON e.id = o.original_entry_id
		JOIN sections s ON s.id = e.section_id
		JOIN courses c ON c.id = e.course_id
		LEFT JOIN teachers nt ON nt.id = o.new_teacher_id
		LEFT JOIN rooms nr ON nr.id = o.new_room_id
		WHERE s.name = $1 AND o.override_date = $2
		ORDER BY e.day, e.time_slot`
	var overrides []models.ScheduleOverrideDetail
	if err := r.db.SelectContext(ctx, &overrides, query, sectionName, date); err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return overrides, nil
}
