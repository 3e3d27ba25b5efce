package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// SavedSchedule is an immutable named snapshot of a group's lessons,
// independent of the live schedule once saved.
type SavedSchedule struct {
	ID          string    `db:"id" json:"id"`
	GroupID     int64     `db:"group_id" json:"group_id"`
	Name        string    `db:"name" json:"name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Lessons     []Lesson  `db:"-" json:"lessons,omitempty"`
	LessonCount int       `db:"-" json:"lesson_count"`
}

// SavedScheduleRow is the persisted shape with the lesson payload encoded as
// JSON.
type SavedScheduleRow struct {
	ID        string         `db:"id"`
	GroupID   int64          `db:"group_id"`
	Name      string         `db:"name"`
	CreatedAt time.Time      `db:"created_at"`
	Payload   types.JSONText `db:"payload"`
}
