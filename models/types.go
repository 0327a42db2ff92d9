// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Round status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Voting method constants
const (
	MethodConsensus = "consensus"
)

// DefaultMealCount is how many recipes a round selects when the creator
// doesn't say otherwise.
const DefaultMealCount = 3

// Request types

type CreateRoundRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorName string `json:"creator_name"`
	BudgetCents *int   `json:"budget_cents,omitempty"`
	MealCount   int    `json:"meal_count,omitempty"`
}

type AddRecipeRequest struct {
	Name       string `json:"name"`
	Cuisine    string `json:"cuisine,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	CostCents  *int   `json:"cost_cents,omitempty"`
}

type ClaimUsernameRequest struct {
	Username string `json:"username"`
}

type CastVoteRequest struct {
	RecipeID string `json:"recipe_id"`
	Category string `json:"category"`
	Comment  string `json:"comment,omitempty"`
}

// Response types

type CreateRoundResponse struct {
	RoundID  string `json:"round_id"`
	AdminKey string `json:"admin_key"`
}

type AddRecipeResponse struct {
	RecipeID string `json:"recipe_id"`
}

type PublishRoundResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type ClaimUsernameResponse struct {
	VoterToken string `json:"voter_token"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type CloseRoundResponse struct {
	ClosedAt time.Time      `json:"closed_at"`
	Snapshot ResultSnapshot `json:"snapshot"`
}

type RoundPreviewResponse struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	RecipeCount int    `json:"recipe_count"`
	VoterCount  int    `json:"voter_count"`
}

// Domain types

type Round struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CreatorName     string     `json:"creator_name"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	ShareSlug       *string    `json:"share_slug,omitempty"`
	BudgetCents     *int       `json:"budget_cents,omitempty"`
	MealCount       int        `json:"meal_count"`
	ClosesAt        *time.Time `json:"closes_at,omitempty"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	FinalSnapshotID *string    `json:"final_snapshot_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Recipe struct {
	ID         string  `json:"id"`
	RoundID    string  `json:"round_id"`
	Name       string  `json:"name"`
	Cuisine    *string `json:"cuisine,omitempty"`
	Difficulty string  `json:"difficulty"`
	CostCents  *int    `json:"cost_cents,omitempty"`
}

type RoundWithRecipes struct {
	Round   Round    `json:"round"`
	Recipes []Recipe `json:"recipes"`
}

type Vote struct {
	ID         string    `json:"id"`
	RoundID    string    `json:"round_id"`
	RecipeID   string    `json:"recipe_id"`
	VoterToken string    `json:"-"` // Never expose in JSON
	Category   string    `json:"category"`
	Comment    string    `json:"comment,omitempty"`
	CastAt     time.Time `json:"cast_at"`
	IPHash     *string   `json:"-"` // Never expose in JSON
	UserAgent  *string   `json:"-"` // Never expose in JSON
}

// Consensus Result Types

type RecipeStats struct {
	RecipeID               string  `json:"recipe_id"`
	Name                   string  `json:"name"`
	Cuisine                *string `json:"cuisine,omitempty"`
	Difficulty             string  `json:"difficulty"`
	CostCents              *int    `json:"cost_cents,omitempty"`
	VoteCount              int     `json:"vote_count"`
	Score                  int     `json:"score"`
	HasVeto                bool    `json:"has_veto"`
	ConsensusLevel         float64 `json:"consensus_level"`
	PositivePct            float64 `json:"positive_pct"`
	RecommendationStrength float64 `json:"recommendation_strength"`
	Rank                   int     `json:"rank"` // 1-indexed Schulze rank
	Selected               bool    `json:"selected"`
}

type ResultSnapshot struct {
	ID         string        `json:"id"`
	RoundID    string        `json:"round_id"`
	Method     string        `json:"method"`
	ComputedAt time.Time     `json:"computed_at"`
	Rankings   []RecipeStats `json:"rankings"`
	Selection  []string      `json:"selection"` // recipe IDs, selection order
	InputsHash string        `json:"inputs_hash"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
