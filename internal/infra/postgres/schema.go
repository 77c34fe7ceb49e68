package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS multiplication_table (
		id SERIAL PRIMARY KEY,
		multiplicand INTEGER NOT NULL,
		multiplier INTEGER NOT NULL,
		product INTEGER NOT NULL,
		UNIQUE (multiplicand, multiplier)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mt_product ON multiplication_table (product)`,
	`CREATE INDEX IF NOT EXISTS idx_mt_pair ON multiplication_table (multiplicand, multiplier)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		user_id BIGINT NOT NULL,
		multiplicand INTEGER NOT NULL,
		multiplier INTEGER NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		correct INTEGER NOT NULL DEFAULT 0,
		last_attempt TIMESTAMPTZ,
		PRIMARY KEY (user_id, multiplicand, multiplier),
		CHECK (correct <= attempts)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_up_user ON user_progress (user_id)`,
}

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", Classify(err))
		}
	}
	return nil
}
