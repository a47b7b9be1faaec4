package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Everything is create-if-absent, so the migration is safe to run on every
// invocation of the endpoint.
const schemaDDL = `
	CREATE SCHEMA IF NOT EXISTS pageforge;
	CREATE TABLE IF NOT EXISTS pageforge.sites (
		subdomain     TEXT PRIMARY KEY,
		email         TEXT NOT NULL,
		site_name     TEXT NOT NULL,
		catchphrase   TEXT NOT NULL,
		description   TEXT NOT NULL,
		contact_info  TEXT NOT NULL,
		color_theme   VARCHAR(20) NOT NULL,
		html          TEXT NOT NULL,
		password_hash TEXT,
		draft_id      TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS pageforge.ad_events (
		id           BIGSERIAL PRIMARY KEY,
		event_type   VARCHAR(40) NOT NULL,
		session_id   TEXT,
		page_url     TEXT,
		referrer     TEXT,
		user_agent   TEXT,
		utm_source   TEXT,
		utm_medium   TEXT,
		utm_campaign TEXT,
		utm_content  TEXT,
		utm_term     TEXT,
		created_at   TIMESTAMPTZ NOT NULL
	);
`

// Migrate ensures the persistent schema exists. Idempotent under repeated
// invocation.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("error applying schema, %v", err)
	}
	return nil
}
