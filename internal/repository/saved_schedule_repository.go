package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/grigorev-dev/timetable-api/internal/models"
	appErrors "github.com/grigorev-dev/timetable-api/pkg/errors"
)

// SavedScheduleRepository persists named snapshots of a group's lessons.
type SavedScheduleRepository struct {
	db *sqlx.DB
}

// NewSavedScheduleRepository creates a new instance of SavedScheduleRepository.
func NewSavedScheduleRepository(db *sqlx.DB) *SavedScheduleRepository {
	return &SavedScheduleRepository{db: db}
}

// Save stores a snapshot and returns its record.
func (r *SavedScheduleRepository) Save(ctx context.Context, groupID int64, name string, lessons []models.Lesson) (*models.SavedSchedule, error) {
	payload, err := json.Marshal(lessons)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule payload: %w", err)
	}

	record := models.SavedSchedule{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		Name:        name,
		CreatedAt:   time.Now().UTC(),
		Lessons:     lessons,
		LessonCount: len(lessons),
	}
	const query = `INSERT INTO saved_schedules (id, group_id, name, payload, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.GroupID, record.Name, types.JSONText(payload), record.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert saved schedule: %w", err)
	}
	return &record, nil
}

// List returns a group's snapshots, newest first, without lesson payloads.
func (r *SavedScheduleRepository) List(ctx context.Context, groupID int64) ([]models.SavedSchedule, error) {
	const query = `SELECT id, group_id, name, payload, created_at FROM saved_schedules WHERE group_id = $1 ORDER BY created_at DESC`
	var rows []models.SavedScheduleRow
	if err := r.db.SelectContext(ctx, &rows, query, groupID); err != nil {
		return nil, fmt.Errorf("list saved schedules: %w", err)
	}

	result := make([]models.SavedSchedule, 0, len(rows))
	for _, row := range rows {
		item, err := rowToSavedSchedule(row, false)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, nil
}

// Get returns a snapshot with its lessons.
func (r *SavedScheduleRepository) Get(ctx context.Context, id string) (*models.SavedSchedule, error) {
	const query = `SELECT id, group_id, name, payload, created_at FROM saved_schedules WHERE id = $1 LIMIT 1`
	var row models.SavedScheduleRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "saved schedule not found")
		}
		return nil, fmt.Errorf("get saved schedule: %w", err)
	}
	return rowToSavedSchedule(row, true)
}

// Delete removes a snapshot.
func (r *SavedScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM saved_schedules WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete saved schedule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved schedule: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "saved schedule not found")
	}
	return nil
}

// DeleteByGroup removes every snapshot belonging to a group.
func (r *SavedScheduleRepository) DeleteByGroup(ctx context.Context, groupID int64) error {
	const query = `DELETE FROM saved_schedules WHERE group_id = $1`
	if _, err := r.db.ExecContext(ctx, query, groupID); err != nil {
		return fmt.Errorf("delete saved schedules for group: %w", err)
	}
	return nil
}

func rowToSavedSchedule(row models.SavedScheduleRow, withLessons bool) (*models.SavedSchedule, error) {
	var lessons []models.Lesson
	if err := json.Unmarshal(row.Payload, &lessons); err != nil {
		return nil, fmt.Errorf("unmarshal schedule payload for %s: %w", row.ID, err)
	}
	item := models.SavedSchedule{
		ID:          row.ID,
		GroupID:     row.GroupID,
		Name:        row.Name,
		CreatedAt:   row.CreatedAt,
		LessonCount: len(lessons),
	}
	if withLessons {
		item.Lessons = lessons
	}
	return &item, nil
}
