package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AppliedFromPool reads schema_migrations through pool.
func AppliedFromPool(pool *pgxpool.Pool) AppliedLister {
	return func(ctx context.Context) (map[string]bool, error) {
		applied := make(map[string]bool)

		rows, err := pool.Query(ctx, "SELECT filename FROM schema_migrations")
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var filename string
			if err := rows.Scan(&filename); err != nil {
				return nil, err
			}
			applied[filename] = true
		}
		return applied, rows.Err()
	}
}
