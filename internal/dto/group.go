package dto

// CreateGroupRequest adds a study group.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// RenameGroupRequest changes a group's display name.
type RenameGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}
