package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		gender CHAR(1) NOT NULL CHECK (gender IN ('M', 'F'))
	)`,
	`CREATE TABLE IF NOT EXISTS tournaments (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		gender CHAR(1) NOT NULL CHECK (gender IN ('M', 'F')),
		number_of_rounds INTEGER NOT NULL DEFAULT 1 CHECK (number_of_rounds >= 1),
		has_playoff BOOLEAN NOT NULL DEFAULT FALSE,
		playoff_teams INTEGER CHECK (playoff_teams IN (4, 8)),
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tournament_teams (
		tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
		team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		position SERIAL,
		PRIMARY KEY (tournament_id, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id SERIAL PRIMARY KEY,
		tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
		team_a_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		team_b_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		venue_id INTEGER REFERENCES venues(id) ON DELETE SET NULL,
		date_time TIMESTAMPTZ,
		stage TEXT NOT NULL CHECK (stage IN ('PRELIMINARY', 'REGULAR', 'QUARTER', 'SEMI', 'THIRD', 'FINAL')),
		round_number INTEGER,
		is_finished BOOLEAN NOT NULL DEFAULT FALSE,
		sets_a INTEGER,
		sets_b INTEGER,
		set_scores JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT matches_distinct_teams CHECK (team_a_id <> team_b_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_tournament ON matches (tournament_id, date_time, round_number)`,
	// Сетка плей-офф создаётся не более одного раза
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_matches_playoff_pair
		ON matches (tournament_id, stage, team_a_id, team_b_id)
		WHERE stage IN ('QUARTER', 'SEMI', 'THIRD', 'FINAL')`,
	`CREATE TABLE IF NOT EXISTS tournament_standings (
		id SERIAL PRIMARY KEY,
		tournament_id INTEGER NOT NULL REFERENCES tournaments(id) ON DELETE CASCADE,
		team_id INTEGER NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		rank INTEGER NOT NULL,
		played INTEGER NOT NULL DEFAULT 0,
		won INTEGER NOT NULL DEFAULT 0,
		lost INTEGER NOT NULL DEFAULT 0,
		sets_won INTEGER NOT NULL DEFAULT 0,
		sets_lost INTEGER NOT NULL DEFAULT 0,
		points_won INTEGER NOT NULL DEFAULT 0,
		points_lost INTEGER NOT NULL DEFAULT 0,
		tournament_points INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (tournament_id, team_id)
	)`,
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}
	return nil
}
