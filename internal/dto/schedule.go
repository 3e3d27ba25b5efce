package dto

// AddLessonRequest places a subject at a grid cell.
type AddLessonRequest struct {
	SubjectID int64 `json:"subject_id" validate:"required,min=1"`
	Day       int   `json:"day" validate:"min=0,max=6"`
	TimeSlot  int   `json:"time_slot" validate:"min=0,max=3"`
}

// ReplaceLessonRequest swaps the subject occupying a cell.
type ReplaceLessonRequest struct {
	SubjectID int64 `json:"subject_id" validate:"required,min=1"`
	Day       int   `json:"day" validate:"min=0,max=6"`
	TimeSlot  int   `json:"time_slot" validate:"min=0,max=3"`
}

// DeleteLessonRequest clears a cell.
type DeleteLessonRequest struct {
	Day      int `json:"day" validate:"min=0,max=6"`
	TimeSlot int `json:"time_slot" validate:"min=0,max=3"`
}

// AvailabilityQuery asks whether a teacher may take a cell.
type AvailabilityQuery struct {
	Teacher  string `form:"teacher" validate:"required"`
	Day      int    `form:"day" validate:"min=0,max=6"`
	TimeSlot int    `form:"time_slot" validate:"min=0,max=3"`
}

// SaveScheduleRequest stores the current grid under a name.
type SaveScheduleRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}
