package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureSocialSchema creates the social dispatch tables if missing and adds
// newer columns to pre-existing installs. Safe to call at startup.
func EnsureSocialSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS social_accounts (
			id BIGSERIAL PRIMARY KEY,
			organization_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			external_account_id TEXT NOT NULL,
			account_name TEXT,
			sealed_access_token BYTEA NOT NULL,
			sealed_refresh_token BYTEA,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (organization_id, platform, external_account_id)
		)`,
		`CREATE TABLE IF NOT EXISTS social_posts (
			id BIGSERIAL PRIMARY KEY,
			job_id TEXT NOT NULL,
			account_id BIGINT NOT NULL,
			platform TEXT NOT NULL,
			external_post_id TEXT NOT NULL,
			canonical_url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (job_id, account_id)
		)`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensuring social schema failed: %w", err)
		}
	}

	// Columns added after the initial release
	checks := []struct {
		table  string
		column string
		alter  string
	}{
		{"social_accounts", "account_name", "ALTER TABLE social_accounts ADD COLUMN account_name TEXT"},
		{"social_posts", "canonical_url", "ALTER TABLE social_posts ADD COLUMN canonical_url TEXT NOT NULL DEFAULT ''"},
	}
	for _, c := range checks {
		exists, err := columnExists(ctx, db, c.table, c.column)
		if err != nil {
			return err
		}
		if !exists {
			if _, err := db.ExecContext(ctx, c.alter); err != nil {
				return fmt.Errorf("adding column %s.%s failed: %w", c.table, c.column, err)
			}
		}
	}
	return nil
}

func columnExists(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	row := db.QueryRowContext(ctx, `SELECT 1 FROM information_schema.columns WHERE table_name=$1 AND column_name=$2`, table, column)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
