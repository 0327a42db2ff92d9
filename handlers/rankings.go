// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/danielhkuo/dishvote/engine"
	"github.com/danielhkuo/dishvote/models"
)

// ConsensusResults is the computed outcome of a voting round: per-recipe
// statistics plus the final meal selection.
type ConsensusResults struct {
	Rankings   []models.RecipeStats
	Selection  []string // recipe IDs in selection order
	InputsHash string
}

// ComputeConsensusResults loads a round's recipes and votes and runs the
// voting engine over the snapshot: Borda-style scores with veto flags,
// Schulze ranks, per-recipe consensus metrics, and a budget-aware smart
// selection of meal_count recipes.
//
// Recipes are loaded ordered by ID so tie-breaking is reproducible across
// calls and processes.
func ComputeConsensusResults(db *sql.DB, roundID string, budgetCents *int, mealCount int) (*ConsensusResults, error) {
	recipes, err := loadRoundRecipes(db, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	votes, voteIDs, err := loadRoundVotes(db, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	candidates := make([]engine.Candidate, len(recipes))
	byID := make(map[string]models.Recipe, len(recipes))
	for i, rec := range recipes {
		cuisine := ""
		if rec.Cuisine != nil {
			cuisine = *rec.Cuisine
		}
		candidates[i] = engine.Candidate{
			ID:         rec.ID,
			CostCents:  rec.CostCents,
			Cuisine:    cuisine,
			Difficulty: rec.Difficulty,
		}
		byID[rec.ID] = rec
	}

	// Schulze rank per recipe, 1-indexed.
	rank := make(map[string]int, len(candidates))
	for i, c := range engine.SchulzeRank(candidates, votes) {
		rank[c.ID] = i + 1
	}

	opts := engine.DefaultOptions()
	opts.BudgetCents = budgetCents
	picks := engine.SmartSelect(candidates, votes, mealCount, opts)

	selected := make(map[string]bool, len(picks))
	selection := make([]string, len(picks))
	for i, c := range picks {
		selected[c.ID] = true
		selection[i] = c.ID
	}

	// Present rankings in scored order: non-vetoed first, score descending.
	scored := engine.ScoreCandidates(candidates, votes)
	rankings := make([]models.RecipeStats, len(scored))
	for i, sc := range scored {
		rec := byID[sc.Candidate.ID]
		m := engine.Consensus(sc.Candidate, votes)
		rankings[i] = models.RecipeStats{
			RecipeID:               rec.ID,
			Name:                   rec.Name,
			Cuisine:                rec.Cuisine,
			Difficulty:             rec.Difficulty,
			CostCents:              rec.CostCents,
			VoteCount:              m.TotalVotes,
			Score:                  sc.Score,
			HasVeto:                sc.HasVeto,
			ConsensusLevel:         m.ConsensusLevel,
			PositivePct:            m.PositivePercentage,
			RecommendationStrength: m.RecommendationStrength,
			Rank:                   rank[rec.ID],
			Selected:               selected[rec.ID],
		}
	}

	return &ConsensusResults{
		Rankings:   rankings,
		Selection:  selection,
		InputsHash: hashVoteIDs(voteIDs),
	}, nil
}

// loadRoundRecipes retrieves all recipes for a round, ordered by ID
func loadRoundRecipes(db *sql.DB, roundID string) ([]models.Recipe, error) {
	rows, err := db.Query(`
		SELECT id, round_id, name, cuisine, difficulty, cost_cents
		FROM recipe WHERE round_id = $1 ORDER BY id
	`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var rec models.Recipe
		if err := rows.Scan(&rec.ID, &rec.RoundID, &rec.Name, &rec.Cuisine, &rec.Difficulty, &rec.CostCents); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}

	return recipes, rows.Err()
}

// loadRoundVotes retrieves all votes for a round as engine votes, plus the
// raw vote IDs for the inputs hash.
func loadRoundVotes(db *sql.DB, roundID string) ([]engine.Vote, []string, error) {
	rows, err := db.Query(`
		SELECT id, recipe_id, voter_token, category, cast_at
		FROM vote WHERE round_id = $1 ORDER BY id
	`, roundID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var votes []engine.Vote
	var voteIDs []string
	for rows.Next() {
		var id, recipeID, voterToken, category string
		var v engine.Vote
		if err := rows.Scan(&id, &recipeID, &voterToken, &category, &v.CastAt); err != nil {
			return nil, nil, err
		}
		v.VoterID = voterToken
		v.CandidateID = recipeID
		v.Category = engine.VoteCategory(category)
		votes = append(votes, v)
		voteIDs = append(voteIDs, id)
	}

	return votes, voteIDs, rows.Err()
}

// hashVoteIDs produces a short verification hash over the set of vote IDs
// that went into a snapshot. Order-independent: IDs are sorted first.
func hashVoteIDs(voteIDs []string) string {
	if len(voteIDs) == 0 {
		return "no-votes"
	}

	sorted := append([]string(nil), voteIDs...)
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, "\n")))
	return hex.EncodeToString(sum[:8])
}
