// Package ports defines the application-layer contracts implemented by the
// infrastructure layer. Services depend on these interfaces only.
package ports

import (
	"context"
	"errors"

	"github.com/manganova/api/internal/domain/entities"
)

// ErrNotFound is returned by repositories when a lookup matches no row.
// Services convert it into the entity's typed NotFound error.
var ErrNotFound = errors.New("entity not found")

// Repository is the generic persistence contract shared by the id-keyed
// entities. Save inserts when the entity has no id yet and updates
// otherwise, refreshing generated fields (id, timestamps) on the entity.
// Delete is hard or soft depending on the entity's deletion policy.
type Repository[T any] interface {
	FindByID(ctx context.Context, id int64) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository persists accounts and their password history.
type UserRepository interface {
	Repository[entities.User]

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// PasswordHistory returns up to limit superseded hashes, newest first.
	PasswordHistory(ctx context.Context, userID int64, limit int) ([]entities.PasswordHistory, error)
	AppendPasswordHistory(ctx context.Context, userID int64, hash string) error
}

// TitleFilter narrows title listings. Zero value lists everything.
type TitleFilter struct {
	Name        string
	ContentType entities.ContentType
	IncludeTags []int64
	ExcludeTags []int64
	Offset      int
	Limit       int
}

// TitleRepository persists catalogued works. FindByID and List hydrate the
// Tags slice. Delete is physical and cascades join rows and ratings.
type TitleRepository interface {
	Repository[entities.Title]

	List(ctx context.Context, filter TitleFilter) ([]*entities.Title, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	AddTags(ctx context.Context, titleID int64, tagIDs []int64) error
	RemoveTags(ctx context.Context, titleID int64, tagIDs []int64) error
	SetCover(ctx context.Context, titleID int64, coverKey string) error
}

// TagRepository persists tags. Delete is a soft delete: the tag drops out
// of default listings but stays reachable by id.
type TagRepository interface {
	Repository[entities.Tag]

	List(ctx context.Context, includeInactive bool) ([]*entities.Tag, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// RatingRepository persists per-user title scores. The (userID, titleID)
// pair is the identity, so this one does not fit the generic contract.
type RatingRepository interface {
	// Upsert inserts or replaces the user's rating for the title.
	Upsert(ctx context.Context, rating *entities.Rating) error
	FindByUserAndTitle(ctx context.Context, userID, titleID int64) (*entities.Rating, error)
	Summary(ctx context.Context, titleID int64) (*entities.RatingSummary, error)
	Delete(ctx context.Context, userID, titleID int64) error
}

// GroupRepository persists groups, memberships and followers.
type GroupRepository interface {
	Repository[entities.Group]

	// List returns groups, optionally filtered by a name substring.
	List(ctx context.Context, name string) ([]*entities.Group, error)
	FindByOwner(ctx context.Context, ownerID int64) (*entities.Group, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Members(ctx context.Context, groupID int64) ([]*entities.User, error)
	Followers(ctx context.Context, groupID int64) ([]*entities.User, error)

	// Follow and Unfollow are idempotent.
	Follow(ctx context.Context, groupID, userID int64) error
	Unfollow(ctx context.Context, groupID, userID int64) error
	IsFollowing(ctx context.Context, groupID, userID int64) (bool, error)
}
