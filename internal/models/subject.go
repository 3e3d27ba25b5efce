package models

// Quota bounds for subjects. One lesson consumes one pair, i.e. two hours.
const (
	HoursPerPair  = 2
	MaxPerDayMin  = 1
	MaxPerDayMax  = 4
	MaxPerWeekCap = 20
)

// Subject is a teaching assignment within a group: a teacher, a course name
// and the hour quota still to be placed on the grid.
type Subject struct {
	ID             int64  `json:"id"`
	GroupID        int64  `json:"group_id"`
	TeacherID      int64  `json:"teacher_id"`
	Teacher        string `json:"teacher"`
	Name           string `json:"subject_name"`
	TotalHours     int    `json:"total_hours"`
	RemainingHours int    `json:"remaining_hours"`
	RemainingPairs int    `json:"remaining_pairs"`
	Priority       int    `json:"priority"`
	MaxPerDay      int    `json:"max_per_day"`
	MinPerWeek     int    `json:"min_per_week"`
	MaxPerWeek     int    `json:"max_per_week"`
}
