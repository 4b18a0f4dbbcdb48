package entities

import "time"

// TagGroup buckets tags for filtering UIs.
type TagGroup string

const (
	TagGroupGenre  TagGroup = "GENRE"
	TagGroupTheme  TagGroup = "THEME"
	TagGroupFormat TagGroup = "FORMAT"
)

// TagGroups lists every valid tag group.
func TagGroups() []TagGroup {
	return []TagGroup{TagGroupGenre, TagGroupTheme, TagGroupFormat}
}

// IsValid reports whether g is a known tag group.
func (g TagGroup) IsValid() bool {
	for _, known := range TagGroups() {
		if g == known {
			return true
		}
	}
	return false
}

// Tag labels titles. Tags are soft-deleted: IsActive flips to false and the
// tag disappears from default listings but stays reachable by id.
type Tag struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Group     TagGroup
	IsActive  bool
}
