package entities

import "time"

// Group is a user-owned community. A user owns at most one group and a
// group name is globally unique.
type Group struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Description *string
	OwnerID     int64
	Followers   int64
}
