package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/entities"
)

// Compile-time check: TagRepository implements ports.TagRepository
var _ ports.TagRepository = (*TagRepository)(nil)

const tagColumns = `id, created_at, updated_at, name, tag_group, is_active`

// scanTag scans a row into a Tag entity.
func scanTag(row pgx.Row) (*entities.Tag, error) {
	var t entities.Tag
	err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Name,
		&t.Group,
		&t.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TagRepository implements ports.TagRepository on PostgreSQL.
type TagRepository struct {
	repo[entities.Tag]
}

// NewTagRepository creates a TagRepository.
func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{newRepo(pool, "tags", tagColumns, scanTag)}
}

// Save inserts the tag when it has no id yet, updates it otherwise.
func (r *TagRepository) Save(ctx context.Context, tag *entities.Tag) error {
	q := r.getQuerier(ctx)

	if tag.ID == 0 {
		query := `
			INSERT INTO tags (name, tag_group, is_active)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(ctx, query, tag.Name, tag.Group, tag.IsActive).
			Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
		return nil
	}

	query := `
		UPDATE tags
		SET name = $2, tag_group = $3, is_active = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, tag.ID, tag.Name, tag.Group, tag.IsActive).
		Scan(&tag.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	return nil
}

// FindByID loads a tag by id, active or not.
func (r *TagRepository) FindByID(ctx context.Context, id int64) (*entities.Tag, error) {
	return r.findBy(ctx, `id = $1`, id)
}

// List returns tags ordered by name. Inactive tags are excluded unless
// includeInactive is set.
func (r *TagRepository) List(ctx context.Context, includeInactive bool) ([]*entities.Tag, error) {
	clause := `ORDER BY name`
	if !includeInactive {
		clause = `WHERE is_active = TRUE ` + clause
	}
	return r.listWhere(ctx, clause)
}

// ExistsByName probes for a tag with the given name, active or not.
func (r *TagRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `name = $1`, name)
}

// Delete soft-deletes a tag by clearing its active flag. The tag stays
// reachable by id but drops out of default listings.
func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	return r.execExpectRow(ctx,
		`UPDATE tags SET is_active = FALSE, updated_at = now() WHERE id = $1`,
		id,
	)
}
