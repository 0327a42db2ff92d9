// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType selects the driver:
// "postgres" (lib/pq) or "sqlite" (modernc, pure Go). SQLite connections are
// capped at one because SQLite allows a single writer.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return conn, nil
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", url)
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unknown database type %q (want sqlite or postgres)", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL sticks to types and defaults both PostgreSQL and SQLite accept.
// Timestamps are always written by the application, never by the database.
const schema = `
-- Voting rounds
CREATE TABLE IF NOT EXISTS round (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    creator_name TEXT NOT NULL,
    method TEXT NOT NULL DEFAULT 'consensus',
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open', 'closed')),
    share_slug TEXT UNIQUE,
    budget_cents INTEGER,
    meal_count INTEGER NOT NULL DEFAULT 3,
    closes_at TIMESTAMP,
    closed_at TIMESTAMP,
    final_snapshot_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_round_share_slug ON round(share_slug);
CREATE INDEX IF NOT EXISTS idx_round_status ON round(status);

-- Candidate recipes
CREATE TABLE IF NOT EXISTS recipe (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    cuisine TEXT,
    difficulty TEXT NOT NULL DEFAULT 'medium',
    cost_cents INTEGER
);

CREATE INDEX IF NOT EXISTS idx_recipe_round_id ON recipe(round_id);

-- Username claims
CREATE TABLE IF NOT EXISTS participant_claim (
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    voter_token TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (round_id, voter_token),
    UNIQUE (round_id, username)
);

CREATE INDEX IF NOT EXISTS idx_participant_claim_round_id ON participant_claim(round_id);

-- Votes: one row per (round, recipe, voter), updated on re-vote
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    recipe_id TEXT NOT NULL REFERENCES recipe(id) ON DELETE CASCADE,
    voter_token TEXT NOT NULL,
    category TEXT NOT NULL CHECK (category IN ('super_like', 'like', 'ok', 'dislike', 'veto')),
    comment TEXT,
    ip_hash TEXT,
    user_agent TEXT,
    cast_at TIMESTAMP NOT NULL,
    UNIQUE (round_id, recipe_id, voter_token)
);

CREATE INDEX IF NOT EXISTS idx_vote_round_id ON vote(round_id);
CREATE INDEX IF NOT EXISTS idx_vote_recipe_id ON vote(recipe_id);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(round_id, voter_token);

-- Result snapshots (payload is a JSON document; TEXT keeps SQLite happy)
CREATE TABLE IF NOT EXISTS result_snapshot (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL REFERENCES round(id) ON DELETE CASCADE,
    method TEXT NOT NULL,
    computed_at TIMESTAMP NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_result_snapshot_round_id ON result_snapshot(round_id);
`
