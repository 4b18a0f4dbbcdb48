package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/entities"
)

// Compile-time check: TitleRepository implements ports.TitleRepository
var _ ports.TitleRepository = (*TitleRepository)(nil)

const titleColumns = `id, created_at, updated_at, name, description, release_date, content_type, cover_key`

const defaultTitlePageSize = 50

// scanTitle scans a row into a Title entity. Tags are hydrated separately.
func scanTitle(row pgx.Row) (*entities.Title, error) {
	var t entities.Title
	err := row.Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.Name,
		&t.Description,
		&t.ReleaseDate,
		&t.ContentType,
		&t.CoverKey,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TitleRepository implements ports.TitleRepository on PostgreSQL.
type TitleRepository struct {
	repo[entities.Title]
}

// NewTitleRepository creates a TitleRepository.
func NewTitleRepository(pool *pgxpool.Pool) *TitleRepository {
	return &TitleRepository{newRepo(pool, "titles", titleColumns, scanTitle)}
}

// Save inserts the title when it has no id yet, updates it otherwise.
func (r *TitleRepository) Save(ctx context.Context, title *entities.Title) error {
	q := r.getQuerier(ctx)

	if title.ID == 0 {
		query := `
			INSERT INTO titles (name, description, release_date, content_type)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(ctx, query,
			title.Name, title.Description, title.ReleaseDate, title.ContentType,
		).Scan(&title.ID, &title.CreatedAt, &title.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert title: %w", err)
		}
		return nil
	}

	query := `
		UPDATE titles
		SET name = $2, description = $3, release_date = $4, content_type = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		title.ID, title.Name, title.Description, title.ReleaseDate, title.ContentType,
	).Scan(&title.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}

	return nil
}

// FindByID loads a title with its tags.
func (r *TitleRepository) FindByID(ctx context.Context, id int64) (*entities.Title, error) {
	title, err := r.findBy(ctx, `id = $1`, id)
	if err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, []*entities.Title{title}); err != nil {
		return nil, err
	}

	return title, nil
}

// List returns titles matching the filter, newest first, tags hydrated.
func (r *TitleRepository) List(ctx context.Context, filter ports.TitleFilter) ([]*entities.Title, error) {
	var (
		conditions []string
		args       []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Name != "" {
		conditions = append(conditions, `name ILIKE '%' || `+arg(filter.Name)+` || '%'`)
	}
	if filter.ContentType != "" {
		conditions = append(conditions, `content_type = `+arg(filter.ContentType))
	}
	if len(filter.IncludeTags) > 0 {
		// Titles carrying every requested tag.
		conditions = append(conditions, `id IN (
			SELECT title_id FROM title_tags
			WHERE tag_id = ANY(`+arg(filter.IncludeTags)+`)
			GROUP BY title_id
			HAVING COUNT(DISTINCT tag_id) = `+arg(len(filter.IncludeTags))+`
		)`)
	}
	if len(filter.ExcludeTags) > 0 {
		conditions = append(conditions, `id NOT IN (
			SELECT title_id FROM title_tags WHERE tag_id = ANY(`+arg(filter.ExcludeTags)+`)
		)`)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = `WHERE ` + strings.Join(conditions, ` AND `)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultTitlePageSize
	}
	clause += ` ORDER BY created_at DESC, id DESC OFFSET ` + arg(filter.Offset) + ` LIMIT ` + arg(limit)

	titles, err := r.listWhere(ctx, clause, args...)
	if err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, titles); err != nil {
		return nil, err
	}

	return titles, nil
}

// loadTags hydrates the Tags slice of every title in one query.
func (r *TitleRepository) loadTags(ctx context.Context, titles []*entities.Title) error {
	if len(titles) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.Title, len(titles))
	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	q := r.getQuerier(ctx)

	query := `
		SELECT tt.title_id, t.id, t.created_at, t.updated_at, t.name, t.tag_group, t.is_active
		FROM title_tags tt
		JOIN tags t ON t.id = tt.tag_id
		WHERE tt.title_id = ANY($1)
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query title tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			titleID int64
			tag     entities.Tag
		)
		err := rows.Scan(&titleID, &tag.ID, &tag.CreatedAt, &tag.UpdatedAt, &tag.Name, &tag.Group, &tag.IsActive)
		if err != nil {
			return fmt.Errorf("failed to scan title tag row: %w", err)
		}
		if title, ok := byID[titleID]; ok {
			title.Tags = append(title.Tags, tag)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating title tag rows: %w", err)
	}

	return nil
}

// ExistsByName probes for a title with the given name.
func (r *TitleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `name = $1`, name)
}

// AddTags associates tags with a title. Already-associated tags are
// ignored, so the operation is idempotent.
func (r *TitleRepository) AddTags(ctx context.Context, titleID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	_, err := r.exec(ctx, `
		INSERT INTO title_tags (title_id, tag_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, titleID, tagIDs)
	if isForeignKeyViolation(err) {
		// A referenced tag was deleted between the caller's existence
		// check and this insert.
		return fmt.Errorf("referenced tag vanished: %w", ports.ErrNotFound)
	}
	return err
}

// RemoveTags drops tag associations from a title.
func (r *TitleRepository) RemoveTags(ctx context.Context, titleID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	_, err := r.exec(ctx,
		`DELETE FROM title_tags WHERE title_id = $1 AND tag_id = ANY($2)`,
		titleID, tagIDs,
	)
	return err
}

// SetCover records the stored cover's object key on the title.
func (r *TitleRepository) SetCover(ctx context.Context, titleID int64, coverKey string) error {
	return r.execExpectRow(ctx,
		`UPDATE titles SET cover_key = $2, updated_at = now() WHERE id = $1`,
		titleID, coverKey,
	)
}

// Delete physically removes a title. Tag associations and ratings cascade
// at the schema level.
func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, id)
}
