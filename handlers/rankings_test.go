// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/danielhkuo/dishvote/testutil"
)

func TestComputeConsensusResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	roundID, _, _ := testutil.CreateTestRound(t, db, cfg, "open")
	pasta := testutil.AddTestRecipe(t, db, roundID, "Pasta")
	curry := testutil.AddTestRecipe(t, db, roundID, "Curry")
	stew := testutil.AddTestRecipe(t, db, roundID, "Stew")

	alice := testutil.CreateTestVoter(t, db, roundID, "alice")
	bob := testutil.CreateTestVoter(t, db, roundID, "bob")
	carol := testutil.CreateTestVoter(t, db, roundID, "carol")

	testutil.CastTestVote(t, db, roundID, pasta, alice, "super_like")
	testutil.CastTestVote(t, db, roundID, pasta, bob, "like")
	testutil.CastTestVote(t, db, roundID, pasta, carol, "like")
	testutil.CastTestVote(t, db, roundID, curry, alice, "like")
	testutil.CastTestVote(t, db, roundID, curry, bob, "ok")
	testutil.CastTestVote(t, db, roundID, stew, alice, "veto")
	testutil.CastTestVote(t, db, roundID, stew, bob, "super_like")

	results, err := ComputeConsensusResults(db, roundID, nil, 3)
	if err != nil {
		t.Fatalf("ComputeConsensusResults() error = %v", err)
	}

	if len(results.Rankings) != 3 {
		t.Fatalf("Expected 3 ranked recipes, got %d", len(results.Rankings))
	}

	// Scored order: pasta (4), curry (1), then vetoed stew last
	if results.Rankings[0].RecipeID != pasta {
		t.Errorf("Expected pasta first, got %s", results.Rankings[0].Name)
	}
	if results.Rankings[2].RecipeID != stew {
		t.Errorf("Expected vetoed stew last, got %s", results.Rankings[2].Name)
	}
	if !results.Rankings[2].HasVeto {
		t.Error("Stew should carry the veto flag")
	}
	if results.Rankings[2].RecommendationStrength != 0 {
		t.Errorf("Vetoed recipe strength = %v, want 0", results.Rankings[2].RecommendationStrength)
	}

	// Every recipe has a 1-indexed Schulze rank
	for _, s := range results.Rankings {
		if s.Rank < 1 || s.Rank > 3 {
			t.Errorf("Recipe %s has rank %d, want 1..3", s.Name, s.Rank)
		}
	}

	// Vetoed recipe never enters the selection
	for _, id := range results.Selection {
		if id == stew {
			t.Error("Vetoed recipe should not be selected")
		}
	}
	if len(results.Selection) != 2 {
		t.Errorf("Expected 2 selected recipes, got %v", results.Selection)
	}

	// Selected flags line up with the selection list
	selected := map[string]bool{}
	for _, id := range results.Selection {
		selected[id] = true
	}
	for _, s := range results.Rankings {
		if s.Selected != selected[s.RecipeID] {
			t.Errorf("Recipe %s Selected = %v, inconsistent with selection list", s.Name, s.Selected)
		}
	}

	if len(results.InputsHash) != 16 {
		t.Errorf("InputsHash = %q, want 16 hex chars", results.InputsHash)
	}
}

func TestComputeConsensusResultsBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	roundID, _, _ := testutil.CreateTestRound(t, db, cfg, "open")
	steak := testutil.AddTestRecipeFull(t, db, roundID, "Steak", "american", "hard", 3000)
	soup := testutil.AddTestRecipeFull(t, db, roundID, "Soup", "french", "easy", 500)

	alice := testutil.CreateTestVoter(t, db, roundID, "alice")
	testutil.CastTestVote(t, db, roundID, steak, alice, "super_like")
	testutil.CastTestVote(t, db, roundID, soup, alice, "like")

	budget := 1000
	results, err := ComputeConsensusResults(db, roundID, &budget, 2)
	if err != nil {
		t.Fatalf("ComputeConsensusResults() error = %v", err)
	}

	// Steak scores higher but busts the budget; soup fits.
	if len(results.Selection) != 1 || results.Selection[0] != soup {
		t.Errorf("Selection = %v, want only soup", results.Selection)
	}
}

func TestComputeConsensusResultsNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()

	roundID, _, _ := testutil.CreateTestRound(t, db, cfg, "open")
	testutil.AddTestRecipe(t, db, roundID, "Lonely Dish")

	results, err := ComputeConsensusResults(db, roundID, nil, 3)
	if err != nil {
		t.Fatalf("ComputeConsensusResults() error = %v", err)
	}

	if len(results.Rankings) != 1 {
		t.Fatalf("Expected 1 ranked recipe, got %d", len(results.Rankings))
	}
	if results.Rankings[0].VoteCount != 0 {
		t.Errorf("VoteCount = %d, want 0", results.Rankings[0].VoteCount)
	}
	if results.InputsHash != "no-votes" {
		t.Errorf("InputsHash = %q, want 'no-votes'", results.InputsHash)
	}
}
