package dtos

import "time"

// RateTitleCommand records the caller's score for a title. Values outside
// 1..10 are rejected at the binding layer.
type RateTitleCommand struct {
	Value int16 `json:"value" binding:"required,min=1,max=10"`
}

// RatingDTO is one user's stored rating.
type RatingDTO struct {
	UserID    int64     `json:"userId"`
	TitleID   int64     `json:"titleId"`
	Value     int16     `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingSummaryDTO aggregates a title's ratings.
type RatingSummaryDTO struct {
	TitleID int64   `json:"titleId"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
