package dtos

import "time"

// CreateTitleCommand adds a work to the catalog.
type CreateTitleCommand struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	ReleaseDate *time.Time `json:"releaseDate"`
	ContentType string     `json:"contentType" binding:"required,contenttype"`
	TagIDs      []int64    `json:"tagIds"`
}

// UpdateTitleCommand patches a title. Nil fields stay untouched.
type UpdateTitleCommand struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ReleaseDate *time.Time `json:"releaseDate"`
	ContentType *string    `json:"contentType" binding:"omitempty,contenttype"`
}

// ListTitlesQuery filters the catalog listing.
type ListTitlesQuery struct {
	Name        string  `form:"name"`
	ContentType string  `form:"contentType" binding:"omitempty,contenttype"`
	IncludeTags []int64 `form:"includeTags"`
	ExcludeTags []int64 `form:"excludeTags"`
	Offset      int     `form:"offset" binding:"omitempty,min=0"`
	Limit       int     `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ModifyTitleTagsCommand adds or removes tag associations.
type ModifyTitleTagsCommand struct {
	TagIDs []int64 `json:"tagIds" binding:"required,min=1"`
}

// TitleDTO is the public representation of a title.
type TitleDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	ReleaseDate *time.Time `json:"releaseDate"`
	ContentType string     `json:"contentType"`
	CoverKey    *string    `json:"coverKey"`
	Tags        []TagDTO   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
