package dtos

import "time"

// CreateGroupCommand creates the caller's group. A user owns at most one.
type CreateGroupCommand struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// GroupDTO is the public representation of a group.
type GroupDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     int64     `json:"ownerId"`
	Followers   int64     `json:"followers"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
