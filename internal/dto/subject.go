package dto

// CreateSubjectRequest attaches a subject to a group. Hours are academic
// hours; every lesson consumes two.
type CreateSubjectRequest struct {
	Teacher     string `json:"teacher" validate:"required,min=1,max=120"`
	SubjectName string `json:"subject_name" validate:"required,min=1,max=200"`
	TotalHours  int    `json:"total_hours" validate:"required,min=2"`
	Priority    int    `json:"priority" validate:"omitempty,min=0"`
	MaxPerDay   int    `json:"max_per_day" validate:"required,min=1,max=4"`
	MinPerWeek  int    `json:"min_per_week" validate:"omitempty,min=0"`
	MaxPerWeek  int    `json:"max_per_week" validate:"omitempty,min=0,max=20"`
}
