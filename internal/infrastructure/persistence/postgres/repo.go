package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manganova/api/internal/application/ports"
)

// querier abstracts query execution so repositories work against either
// the pool or a transaction from the context.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// repo is the generic base embedded by every entity repository. It binds a
// table, its column list and a row-scanning function, and provides the
// shared query helpers on top of them.
//
// table may carry an alias ("groups g") when columns reference it.
type repo[T any] struct {
	pool    *pgxpool.Pool
	table   string
	columns string
	scanRow func(row pgx.Row) (*T, error)
}

func newRepo[T any](pool *pgxpool.Pool, table, columns string, scanRow func(row pgx.Row) (*T, error)) repo[T] {
	return repo[T]{pool: pool, table: table, columns: columns, scanRow: scanRow}
}

// getQuerier returns the transaction from the context if one is in flight,
// the pool otherwise.
func (r *repo[T]) getQuerier(ctx context.Context) querier {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// findBy loads the single row matching the WHERE clause.
func (r *repo[T]) findBy(ctx context.Context, clause string, args ...any) (*T, error) {
	q := r.getQuerier(ctx)

	query := `SELECT ` + r.columns + ` FROM ` + r.table + ` WHERE ` + clause

	entity, err := r.scanRow(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}

	return entity, nil
}

// listWhere loads every row matching the trailing clause (WHERE/ORDER
// BY/LIMIT), which may be empty.
func (r *repo[T]) listWhere(ctx context.Context, clause string, args ...any) ([]*T, error) {
	query := `SELECT ` + r.columns + ` FROM ` + r.table
	if clause != "" {
		query += ` ` + clause
	}
	return r.selectMany(ctx, query, args...)
}

// selectMany runs a full SELECT statement and scans every row.
func (r *repo[T]) selectMany(ctx context.Context, query string, args ...any) ([]*T, error) {
	q := r.getQuerier(ctx)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	var result []*T
	for rows.Next() {
		entity, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.table, err)
		}
		result = append(result, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", r.table, err)
	}

	return result, nil
}

// exists runs an EXISTS probe for the WHERE clause.
func (r *repo[T]) exists(ctx context.Context, clause string, args ...any) (bool, error) {
	q := r.getQuerier(ctx)

	query := `SELECT EXISTS(SELECT 1 FROM ` + r.table + ` WHERE ` + clause + `)`

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", r.table, err)
	}

	return exists, nil
}

// exec runs a statement and returns the number of affected rows.
func (r *repo[T]) exec(ctx context.Context, sql string, args ...any) (int64, error) {
	q := r.getQuerier(ctx)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to exec on %s: %w", r.table, err)
	}

	return tag.RowsAffected(), nil
}

// execExpectRow runs a statement that must affect at least one row, and
// returns ports.ErrNotFound otherwise.
func (r *repo[T]) execExpectRow(ctx context.Context, sql string, args ...any) error {
	affected, err := r.exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// deleteByID physically removes the row with the given id.
func (r *repo[T]) deleteByID(ctx context.Context, id int64) error {
	return r.execExpectRow(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
}
