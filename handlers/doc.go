// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the DishVote API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - RoundHandler: Round lifecycle (create, add recipes, publish, close)
  - VotingHandler: Username claims and vote submission
  - ResultsHandler: Round info, previews, and results retrieval

Handlers are created via constructor functions that accept *sql.DB and Config:

	roundHandler := handlers.NewRoundHandler(db, cfg)

# Round Lifecycle

Rounds progress through three states: draft → open → closed

	POST /rounds              → CreateRound (returns admin_key)
	POST /rounds/{id}/recipes → AddRecipe (draft only)
	POST /rounds/{id}/publish → PublishRound (generates share_slug)
	POST /rounds/{id}/close   → CloseRound (computes consensus results)

Admin operations require the X-Admin-Key header.

# Voting Flow

Voters interact via the share slug:

	POST /rounds/{slug}/claim-username → ClaimUsername (returns voter_token)
	POST /rounds/{slug}/votes          → CastVote (create or update)
	GET  /rounds/{slug}/my-votes       → GetMyVotes

Voter operations require the X-Voter-Token header. Votes are one row per
(voter, recipe); re-voting updates in place.

# Consensus Algorithm

The scoring and ranking machinery lives in the engine package; rankings.go
adapts it to the database:

	results, err := ComputeConsensusResults(db, roundID, budgetCents, mealCount)

This computes Borda-style scores with veto flags, Schulze ranks from the
pairwise preference matrix, per-recipe consensus metrics, and a
budget-aware selection of meal_count recipes. CloseRound persists the
outcome as an immutable result snapshot; GetResults serves the snapshot
and never recomputes.
*/
package handlers
