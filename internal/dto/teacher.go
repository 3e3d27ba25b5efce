package dto

// CreateTeacherRequest registers a teacher on the global roster.
type CreateTeacherRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}
