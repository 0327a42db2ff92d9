// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "postgres" (lib/pq) and "sqlite" (modernc.org/sqlite,
pure Go, no cgo). SQLite connections are opened with WAL mode, foreign keys
on, and a single connection, since SQLite permits one writer.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is restricted to the dialect both engines share; timestamps are
written by the application rather than SQL defaults so the schema stays
portable.

# Tables

The schema includes:

  - round: voting round metadata and lifecycle state
  - recipe: candidate recipes per round
  - participant_claim: maps usernames to voter tokens
  - vote: one categorical vote per (round, recipe, voter)
  - result_snapshot: immutable computed results

# Relationships

	round 1──* recipe
	round 1──* participant_claim
	round 1──* vote
	recipe 1──* vote
	round 1──* result_snapshot

All foreign keys use ON DELETE CASCADE.
*/
package db
