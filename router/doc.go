// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the DishVote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Round management (admin, requires X-Admin-Key):

	POST /rounds              - Create round
	GET  /rounds/{id}/admin   - Get round details
	POST /rounds/{id}/recipes - Add recipe
	POST /rounds/{id}/publish - Open for voting
	POST /rounds/{id}/close   - Seal results

Voting (public, uses share slug, requires X-Voter-Token):

	POST /rounds/{slug}/claim-username - Claim voter identity
	POST /rounds/{slug}/votes          - Cast/update a vote
	GET  /rounds/{slug}/my-votes       - The caller's own votes

Results (public):

	GET /rounds/{slug}            - Round info and recipes
	GET /rounds/{slug}/results    - Final results (closed only)
	GET /rounds/{slug}/vote-count - Distinct voter count
	GET /rounds/{slug}/preview    - Compact preview data

# Handler Initialization

The router creates handler instances with dependency injection:

	roundHandler := handlers.NewRoundHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
