package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/entities"
)

// Compile-time check: GroupRepository implements ports.GroupRepository
var _ ports.GroupRepository = (*GroupRepository)(nil)

// groupColumns includes the follower count so reads come back complete.
// The table is aliased "g" for the correlated subquery.
const groupColumns = `g.id, g.created_at, g.updated_at, g.name, g.description, g.owner_id,
	(SELECT COUNT(*) FROM group_followers f WHERE f.group_id = g.id)`

// scanGroup scans a row into a Group entity.
func scanGroup(row pgx.Row) (*entities.Group, error) {
	var g entities.Group
	err := row.Scan(
		&g.ID,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.Name,
		&g.Description,
		&g.OwnerID,
		&g.Followers,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GroupRepository implements ports.GroupRepository on PostgreSQL.
type GroupRepository struct {
	repo[entities.Group]
}

// NewGroupRepository creates a GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{newRepo(pool, "groups g", groupColumns, scanGroup)}
}

// Save inserts the group when it has no id yet, updates it otherwise. The
// Followers field is derived, never written.
func (r *GroupRepository) Save(ctx context.Context, group *entities.Group) error {
	q := r.getQuerier(ctx)

	if group.ID == 0 {
		query := `
			INSERT INTO groups (name, description, owner_id)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(ctx, query, group.Name, group.Description, group.OwnerID).
			Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		return nil
	}

	query := `
		UPDATE groups
		SET name = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, group.ID, group.Name, group.Description).
		Scan(&group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	return nil
}

// FindByID loads a group with its follower count.
func (r *GroupRepository) FindByID(ctx context.Context, id int64) (*entities.Group, error) {
	return r.findBy(ctx, `g.id = $1`, id)
}

// List returns groups ordered by name, optionally filtered by a name
// substring.
func (r *GroupRepository) List(ctx context.Context, name string) ([]*entities.Group, error) {
	if name != "" {
		return r.listWhere(ctx, `WHERE g.name ILIKE '%' || $1 || '%' ORDER BY g.name`, name)
	}
	return r.listWhere(ctx, `ORDER BY g.name`)
}

// FindByOwner loads the group owned by the user, if any.
func (r *GroupRepository) FindByOwner(ctx context.Context, ownerID int64) (*entities.Group, error) {
	return r.findBy(ctx, `g.owner_id = $1`, ownerID)
}

// ExistsByName probes for a group with the given name.
func (r *GroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `g.name = $1`, name)
}

// Members returns the group's members ordered by username.
func (r *GroupRepository) Members(ctx context.Context, groupID int64) ([]*entities.User, error) {
	return r.listUsersVia(ctx, "group_members", groupID)
}

// Followers returns the group's followers ordered by username.
func (r *GroupRepository) Followers(ctx context.Context, groupID int64) ([]*entities.User, error) {
	return r.listUsersVia(ctx, "group_followers", groupID)
}

func (r *GroupRepository) listUsersVia(ctx context.Context, joinTable string, groupID int64) ([]*entities.User, error) {
	q := r.getQuerier(ctx)

	query := `
		SELECT u.id, u.created_at, u.updated_at, u.username, u.email, u.password
		FROM users u
		JOIN ` + joinTable + ` j ON j.user_id = u.id
		WHERE j.group_id = $1
		ORDER BY u.username
	`

	rows, err := q.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", joinTable, err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", joinTable, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", joinTable, err)
	}

	return users, nil
}

// Follow subscribes a user to a group. Following twice is a no-op.
func (r *GroupRepository) Follow(ctx context.Context, groupID, userID int64) error {
	_, err := r.exec(ctx, `
		INSERT INTO group_followers (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, groupID, userID)
	return err
}

// Unfollow removes a subscription. Unfollowing when not following is a
// no-op.
func (r *GroupRepository) Unfollow(ctx context.Context, groupID, userID int64) error {
	_, err := r.exec(ctx,
		`DELETE FROM group_followers WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	)
	return err
}

// IsFollowing reports whether the user follows the group.
func (r *GroupRepository) IsFollowing(ctx context.Context, groupID, userID int64) (bool, error) {
	q := r.getQuerier(ctx)

	query := `SELECT EXISTS(SELECT 1 FROM group_followers WHERE group_id = $1 AND user_id = $2)`

	var following bool
	if err := q.QueryRow(ctx, query, groupID, userID).Scan(&following); err != nil {
		return false, fmt.Errorf("failed to check follower existence: %w", err)
	}

	return following, nil
}

// Delete physically removes a group. Membership and follower rows cascade
// at the schema level.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	return r.execExpectRow(ctx, `DELETE FROM groups WHERE id = $1`, id)
}
