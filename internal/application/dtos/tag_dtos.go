package dtos

import "time"

// CreateTagCommand adds a tag.
type CreateTagCommand struct {
	Name  string `json:"name" binding:"required"`
	Group string `json:"group" binding:"required,taggroup"`
}

// UpdateTagCommand patches a tag. Nil fields stay untouched; a patch with
// no fields at all is rejected by the service.
type UpdateTagCommand struct {
	Name  *string `json:"name"`
	Group *string `json:"group" binding:"omitempty,taggroup"`
}

// ListTagsQuery controls tag listing. Inactive tags are hidden by default.
type ListTagsQuery struct {
	IncludeInactive bool `form:"includeInactive"`
}

// TagDTO is the public representation of a tag.
type TagDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Group     string    `json:"group"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
