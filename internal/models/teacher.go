package models

import "time"

// Teacher is an instructor on the global roster, shared across groups.
type Teacher struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CascadeSummary reports what a cascading deletion removed.
type CascadeSummary struct {
	SubjectsRemoved int     `json:"subjects_removed"`
	LessonsRemoved  int     `json:"lessons_removed"`
	FiltersRemoved  int     `json:"filters_removed"`
	GroupsAffected  []int64 `json:"groups_affected,omitempty"`
}
