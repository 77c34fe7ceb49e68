package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS multiplication_table (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		multiplicand INTEGER NOT NULL,
		multiplier INTEGER NOT NULL,
		product INTEGER NOT NULL,
		UNIQUE (multiplicand, multiplier)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mt_product ON multiplication_table (product)`,
	`CREATE INDEX IF NOT EXISTS idx_mt_pair ON multiplication_table (multiplicand, multiplier)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id INTEGER NOT NULL,
		multiplicand INTEGER NOT NULL,
		multiplier INTEGER NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		correct INTEGER NOT NULL DEFAULT 0,
		last_attempt TIMESTAMP,
		PRIMARY KEY (user_id, multiplicand, multiplier),
		CHECK (correct <= attempts)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_up_user ON user_progress (user_id)`,
}

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", Classify(err))
		}
	}
	return nil
}
