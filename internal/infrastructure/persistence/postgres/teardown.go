package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// tables in drop order: children before parents.
var tables = []string{
	"group_followers",
	"group_members",
	"groups",
	"ratings",
	"title_tags",
	"tags",
	"titles",
	"password_history",
	"users",
	"schema_migrations",
}

// DropAll destroys every application table. Called on shutdown only when
// the DB_DROP_TABLES flag is set; config validation forbids that flag in
// prod, and callers must still check it before invoking this.
func DropAll(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range tables {
		if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS `+table+` CASCADE`); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
