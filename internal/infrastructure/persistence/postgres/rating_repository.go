package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/entities"
)

// Compile-time check: RatingRepository implements ports.RatingRepository
var _ ports.RatingRepository = (*RatingRepository)(nil)

const ratingColumns = `user_id, title_id, value, created_at, updated_at`

// scanRating scans a row into a Rating entity.
func scanRating(row pgx.Row) (*entities.Rating, error) {
	var rt entities.Rating
	err := row.Scan(
		&rt.UserID,
		&rt.TitleID,
		&rt.Value,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

// RatingRepository implements ports.RatingRepository on PostgreSQL.
// Ratings are keyed by (user_id, title_id), not by a surrogate id.
type RatingRepository struct {
	repo[entities.Rating]
}

// NewRatingRepository creates a RatingRepository.
func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{newRepo(pool, "ratings", ratingColumns, scanRating)}
}

// Upsert inserts the user's rating for the title, replacing the value if
// one already exists. Timestamps are refreshed on the entity.
func (r *RatingRepository) Upsert(ctx context.Context, rating *entities.Rating) error {
	q := r.getQuerier(ctx)

	query := `
		INSERT INTO ratings (user_id, title_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, title_id) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, rating.UserID, rating.TitleID, rating.Value).
		Scan(&rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

// FindByUserAndTitle loads one user's rating for a title.
func (r *RatingRepository) FindByUserAndTitle(ctx context.Context, userID, titleID int64) (*entities.Rating, error) {
	return r.findBy(ctx, `user_id = $1 AND title_id = $2`, userID, titleID)
}

// Summary returns the average and count of a title's ratings. A title with
// no ratings yields a zero summary, not an error.
func (r *RatingRepository) Summary(ctx context.Context, titleID int64) (*entities.RatingSummary, error) {
	q := r.getQuerier(ctx)

	query := `
		SELECT COALESCE(AVG(value), 0), COUNT(*)
		FROM ratings
		WHERE title_id = $1
	`

	summary := &entities.RatingSummary{TitleID: titleID}
	err := q.QueryRow(ctx, query, titleID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating summary: %w", err)
	}

	return summary, nil
}

// Delete removes one user's rating for a title.
func (r *RatingRepository) Delete(ctx context.Context, userID, titleID int64) error {
	return r.execExpectRow(ctx,
		`DELETE FROM ratings WHERE user_id = $1 AND title_id = $2`,
		userID, titleID,
	)
}
