package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/domain/entities"
)

// Compile-time check: UserRepository implements ports.UserRepository
var _ ports.UserRepository = (*UserRepository)(nil)

const userColumns = `id, created_at, updated_at, username, email, password`

// scanUser scans a row into a User entity.
func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.Username,
		&u.Email,
		&u.Password,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserRepository implements ports.UserRepository on PostgreSQL.
//
// Thread-safe: backed by the connection pool.
// Transaction-aware: joins the transaction from the context if present.
type UserRepository struct {
	repo[entities.User]
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{newRepo(pool, "users", userColumns, scanUser)}
}

// Save inserts the user when it has no id yet, updates it otherwise.
// Generated fields (id, timestamps) are refreshed on the entity.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	q := r.getQuerier(ctx)

	if user.ID == 0 {
		query := `
			INSERT INTO users (username, email, password)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at
		`
		err := q.QueryRow(ctx, query, user.Username, user.Email, user.Password).
			Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	}

	query := `
		UPDATE users
		SET username = $2, email = $3, password = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.Password).
		Scan(&user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// FindByID loads a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	return r.findBy(ctx, `id = $1`, id)
}

// FindByEmail loads a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findBy(ctx, `email = $1`, email)
}

// FindByUsername loads a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findBy(ctx, `username = $1`, username)
}

// ExistsByEmail probes for a user with the given email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `email = $1`, email)
}

// ExistsByUsername probes for a user with the given username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `username = $1`, username)
}

// Delete physically removes a user. Ratings, memberships and history rows
// cascade at the schema level.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, id)
}

// PasswordHistory returns up to limit superseded hashes, newest first.
func (r *UserRepository) PasswordHistory(ctx context.Context, userID int64, limit int) ([]entities.PasswordHistory, error) {
	q := r.getQuerier(ctx)

	query := `
		SELECT id, created_at, user_id, password
		FROM password_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query password history: %w", err)
	}
	defer rows.Close()

	var history []entities.PasswordHistory
	for rows.Next() {
		var h entities.PasswordHistory
		if err := rows.Scan(&h.ID, &h.CreatedAt, &h.UserID, &h.Password); err != nil {
			return nil, fmt.Errorf("failed to scan password history row: %w", err)
		}
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating password history rows: %w", err)
	}

	return history, nil
}

// AppendPasswordHistory records a superseded hash for the user.
func (r *UserRepository) AppendPasswordHistory(ctx context.Context, userID int64, hash string) error {
	_, err := r.exec(ctx,
		`INSERT INTO password_history (user_id, password) VALUES ($1, $2)`,
		userID, hash,
	)
	return err
}
