package entities

import "time"

// Rating bounds. Values outside this range are rejected at the binding
// layer and never reach the service.
const (
	RatingMin = 1
	RatingMax = 10
)

// Rating is one user's score for one title. The (UserID, TitleID) pair is
// the identity; posting again replaces the value (upsert).
type Rating struct {
	UserID    int64
	TitleID   int64
	Value     int16
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingSummary is the aggregate returned for a title.
type RatingSummary struct {
	TitleID int64
	Average float64
	Count   int64
}
