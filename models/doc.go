// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateRoundRequest: title, description, creator_name, budget_cents, meal_count
  - AddRecipeRequest: name, cuisine, difficulty, cost_cents
  - ClaimUsernameRequest: username
  - CastVoteRequest: recipe_id, category, comment

# Response Types

Types for JSON responses:

  - CreateRoundResponse: round_id, admin_key
  - AddRecipeResponse: recipe_id
  - PublishRoundResponse: share_slug, share_url
  - ClaimUsernameResponse: voter_token
  - CastVoteResponse: vote_id, message
  - CloseRoundResponse: closed_at, snapshot
  - RoundPreviewResponse: title, status, recipe_count, voter_count
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Round: voting round metadata and lifecycle state
  - Recipe: a candidate dish with cuisine, difficulty, and cost estimate
  - Vote: one voter's categorical vote on one recipe
  - RecipeStats: computed consensus statistics for a recipe
  - ResultSnapshot: immutable result record

# Constants

Status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Voting method:

	MethodConsensus = "consensus"

Vote categories live in the engine package (engine.VoteCategory); handlers
validate incoming category strings with engine.VoteCategory.Valid.
*/
package models
