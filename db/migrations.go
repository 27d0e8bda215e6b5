package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type migration struct {
	version    string
	statements []string
}

// migrations are applied in order; each version runs once and is recorded in schema_log.
// Statements are idempotent so a partially applied version can be re-run.
var migrations = []migration{
	{
		version: "0001_core",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS players (
				id       SERIAL PRIMARY KEY,
				name     TEXT NOT NULL,
				club     TEXT,
				category TEXT,
				rating   INTEGER NOT NULL,
				elo      TEXT,
				id_fide  TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS tournaments (
				id         SERIAL PRIMARY KEY,
				name       TEXT NOT NULL,
				mode       TEXT,
				location   TEXT NOT NULL,
				start_date DATE NOT NULL,
				end_date   DATE
			)`,
			`CREATE TABLE IF NOT EXISTS rounds (
				id            SERIAL PRIMARY KEY,
				tournament_id INTEGER NOT NULL REFERENCES tournaments (id),
				round_number  INTEGER NOT NULL CHECK (round_number > 0)
			)`,
			`CREATE TABLE IF NOT EXISTS matches (
				id         SERIAL PRIMARY KEY,
				round_id   INTEGER NOT NULL REFERENCES rounds (id),
				player1_id INTEGER NOT NULL REFERENCES players (id),
				player2_id INTEGER NOT NULL REFERENCES players (id),
				result     TEXT NOT NULL DEFAULT '',
				pgn        TEXT,
				link       TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_rounds_tournament ON rounds (tournament_id, round_number)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_round ON matches (round_id)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_player1 ON matches (player1_id)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_player2 ON matches (player2_id)`,
		},
	},
	{
		version: "0002_site_content",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS news (
				id         SERIAL PRIMARY KEY,
				title      TEXT NOT NULL,
				content    TEXT NOT NULL,
				image_url  TEXT,
				image_key  TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS events (
				id          SERIAL PRIMARY KEY,
				title       TEXT NOT NULL,
				location    TEXT NOT NULL,
				description TEXT NOT NULL,
				type        TEXT,
				date        TEXT NOT NULL,
				time        TEXT NOT NULL,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS images (
				id         SERIAL PRIMARY KEY,
				title      TEXT NOT NULL,
				album      TEXT NOT NULL,
				url        TEXT NOT NULL,
				object_key TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_news_created_at ON news (created_at DESC)`,
		},
	},
}

// Migrate creates the schema if needed.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_log (
		version      TEXT PRIMARY KEY,
		date_applied TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_log: %w", err)
	}

	for _, m := range migrations {
		var applied bool
		err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM schema_log WHERE version = $1)`, m.version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.version, err)
		}
		if applied {
			continue
		}

		for _, stmt := range m.statements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %s failed: %w", m.version, err)
			}
		}

		if _, err := db.ExecContext(ctx, `INSERT INTO schema_log (version) VALUES ($1)`, m.version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.version, err)
		}
		logger.Info("migration applied", slog.String("version", m.version))
	}

	return nil
}
