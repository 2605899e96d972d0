package database

import (
	"context"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		hashed_password BYTEA NOT NULL,
		role TEXT NOT NULL DEFAULT 'viewer',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		role TEXT NOT NULL,
		experience_years INTEGER NOT NULL,
		has_license BOOLEAN NOT NULL,
		available_from DATE NOT NULL,
		consent BOOLEAN NOT NULL,
		score INTEGER NOT NULL,
		priority TEXT NOT NULL,
		outcome TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		attribution TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_email_role ON applications (lower(email), role)`,
}

const clickHouseSchema = `
	CREATE TABLE IF NOT EXISTS visitor_events (
		event_id String,
		session_id Nullable(String),
		fbp Nullable(String),
		fbc Nullable(String),
		page_url String,
		referrer Nullable(String),
		user_agent String,
		ip_address String,
		search String,
		attribution String,
		utm_source LowCardinality(String),
		utm_medium LowCardinality(String),
		utm_campaign String,
		timestamp DateTime64(3, 'UTC')
	) ENGINE = MergeTree
	ORDER BY (timestamp, event_id)
`

// EnsurePostgresSchema creates the users and applications tables when missing.
func (c *DBClient) EnsurePostgresSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply postgres schema: %w", err)
		}
	}
	return nil
}

// EnsureClickHouseSchema creates the visitor_events table when missing.
func (c *ClickHouseClient) EnsureClickHouseSchema(ctx context.Context) error {
	if err := c.Conn.Exec(ctx, clickHouseSchema); err != nil {
		return fmt.Errorf("apply clickhouse schema: %w", err)
	}
	return nil
}
