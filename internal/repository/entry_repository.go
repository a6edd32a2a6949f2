package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classsync/classsync-api/internal/models"
)

const entryDetailSelect = `SELECT e.id, e.section_id, s.name AS section_name, e.day, e.time_slot,
	e.course_id, c.name AS course_name, e.teacher_id, t.name AS teacher_name, e.room_id, r.name AS room_name
	FROM schedule_entries e
	JOIN sections s ON s.id = e.section_id
	JOIN courses c ON c.id = e.course_id
	JOIN teachers t ON t.id = e.teacher_id
	JOIN rooms r ON r.id = e.room_id`

// EntryRepository manages the committed timetable entries.
type EntryRepository struct {
	db *sqlx.DB
}

// NewEntryRepository constructs an EntryRepository.
func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Tx runs fn inside one transaction, rolling back on error.
func (r *EntryRepository) Tx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// ListDetailed returns every committed entry across all sections with the
// joined display names.
func (r *EntryRepository) ListDetailed(ctx context.Context) ([]models.ScheduleEntryDetail, error) {
	query := entryDetailSelect + ` ORDER BY s.name, e.day, e.time_slot`
	var entries []models.ScheduleEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ListDetailedBySection returns one section's committed entries.
func (r *EntryRepository) ListDetailedBySection(ctx context.Context, sectionName string) ([]models.ScheduleEntryDetail, error) {
	query := entryDetailSelect + ` WHERE s.name = $1 ORDER BY e.day, e.time_slot`
	var entries []models.ScheduleEntryDetail
	if err := r.db.SelectContext(ctx, &entries, query, sectionName); err != nil {
		return nil, fmt.Errorf("list section entries: %w", err)
	}
	return entries, nil
}

// FindDetailedByID fetches one entry with joined names.
func (r *EntryRepository) FindDetailedByID(ctx context.Context, id string) (*models.ScheduleEntryDetail, error) {
	query := entryDetailSelect + ` WHERE e.id = $1`
	var entry models.ScheduleEntryDetail
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateTx inserts one entry inside a save transaction.
func (r *EntryRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, entry *models.ScheduleEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO schedule_entries (id, section_id, day, time_slot, course_id, teacher_id, room_id, created_at)
		VALUES (:id, :section_id, :day, :time_slot, :course_id, :teacher_id, :room_id, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// DeleteBySectionTx clears a section's entries and their overrides ahead of
// a replacement save.
func (r *EntryRepository) DeleteBySectionTx(ctx context.Context, tx *sqlx.Tx, sectionID string) error {
	const overrides = `DELETE FROM schedule_overrides WHERE original_entry_id IN
		(SELECT id FROM schedule_entries WHERE section_id = $1)`
	if _, err := tx.ExecContext(ctx, overrides, sectionID); err != nil {
		return fmt.Errorf("delete section overrides: %w", err)
	}
	const query = `DELETE FROM schedule_entries WHERE section_id = $1`
	if _, err := tx.ExecContext(ctx, query, sectionID); err != nil {
		return fmt.Errorf("delete section entries: %w", err)
	}
	return nil
}

// DeleteAll wipes every committed entry and override.
func (r *EntryRepository) DeleteAll(ctx context.Context) error {
	return r.Tx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_overrides`); err != nil {
			return fmt.Errorf("delete overrides: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries`); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		return nil
	})
}
