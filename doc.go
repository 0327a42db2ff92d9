// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the DishVote API server.

DishVote is a group meal-planning service: a host proposes recipes, the
group votes with a five-level scale (super_like, like, ok, dislike, veto),
and a consensus engine picks the week's meals using Borda-style scoring,
Schulze ranking, and budget-aware selection.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=dishvote.db go run main.go

Or with flags:

	go run main.go -p 4318 -d dishvote.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 4318)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - BASE_URL (--base-url): Public base URL used in share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: Pure voting algorithms (scoring, Schulze, consensus, selection)
  - handlers: HTTP request handlers (rounds, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
