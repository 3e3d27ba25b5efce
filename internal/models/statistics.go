package models

// Statistics aggregates quota consumption for one group. TotalTeachers is the
// size of the shared roster, not a per-group count.
type Statistics struct {
	TotalSubjects  int `json:"total_subjects"`
	TotalTeachers  int `json:"total_teachers"`
	ScheduledPairs int `json:"scheduled_pairs"`
	TotalHours     int `json:"total_hours"`
	RemainingHours int `json:"remaining_hours"`
	RemainingPairs int `json:"remaining_pairs"`
}
