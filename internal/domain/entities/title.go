package entities

import "time"

// ContentType classifies a title by its publication format.
type ContentType string

const (
	ContentTypeManga   ContentType = "MANGA"
	ContentTypeManhwa  ContentType = "MANHWA"
	ContentTypeManhua  ContentType = "MANHUA"
	ContentTypeNovel   ContentType = "NOVEL"
	ContentTypeOneShot ContentType = "ONESHOT"
)

// ContentTypes lists every valid content type, in declaration order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeManga,
		ContentTypeManhwa,
		ContentTypeManhua,
		ContentTypeNovel,
		ContentTypeOneShot,
	}
}

// IsValid reports whether c is a known content type.
func (c ContentType) IsValid() bool {
	for _, known := range ContentTypes() {
		if c == known {
			return true
		}
	}
	return false
}

// Title is a catalogued work. Name is globally unique. Deleting a title is
// physical and cascades its tag associations and ratings.
type Title struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Description *string
	ReleaseDate *time.Time
	ContentType ContentType
	CoverKey    *string
	Tags        []Tag
}
