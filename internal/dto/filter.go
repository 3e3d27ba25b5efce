package dto

// SetFilterRequest creates or replaces a teacher's negative filter within a
// group. Listed days and slots become unavailable for that teacher.
type SetFilterRequest struct {
	Teacher         string `json:"teacher" validate:"required,min=1,max=120"`
	RestrictedDays  []int  `json:"restricted_days" validate:"omitempty,dive,min=0,max=6"`
	RestrictedSlots []int  `json:"restricted_slots" validate:"omitempty,dive,min=0,max=3"`
}
