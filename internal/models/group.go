package models

import "time"

// DefaultGroupID identifies the permanent group that cannot be renamed or
// deleted.
const DefaultGroupID int64 = 1

// Group is an independently scheduled cohort with its own subjects, lessons
// and saved schedules.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
