// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/dishvote/models"
	"github.com/danielhkuo/dishvote/testutil"
)

func TestClaimUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	_, _, slug := testutil.CreateTestRound(t, db, cfg, "open")

	tests := []struct {
		name           string
		slug           string
		username       string
		expectedStatus int
	}{
		{"valid claim", slug, "alice", http.StatusCreated},
		{"second voter", slug, "bob", http.StatusCreated},
		{"duplicate username", slug, "alice", http.StatusConflict},
		{"username too short", slug, "a", http.StatusBadRequest},
		{"username too long", slug, strings.Repeat("x", 51), http.StatusBadRequest},
		{"unknown slug", "nope", "carol", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/rounds/"+tt.slug+"/claim-username",
				models.ClaimUsernameRequest{Username: tt.username}, nil)
			req.SetPathValue("slug", tt.slug)
			w := httptest.NewRecorder()

			handler.ClaimUsername(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.ClaimUsernameResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.VoterToken == "" {
					t.Error("Expected non-empty voter_token")
				}
			}
		})
	}
}

func TestClaimUsernameOnNonOpenRound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	_, _, slug := testutil.CreateTestRound(t, db, cfg, "closed")

	req := testutil.MakeRequest("POST", "/rounds/"+slug+"/claim-username",
		models.ClaimUsernameRequest{Username: "latecomer"}, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()

	handler.ClaimUsername(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	roundID, _, slug := testutil.CreateTestRound(t, db, cfg, "open")
	recipeID := testutil.AddTestRecipe(t, db, roundID, "Bibimbap")
	voterToken := testutil.CreateTestVoter(t, db, roundID, "alice")

	otherRound, _, _ := testutil.CreateTestRound(t, db, cfg, "open")
	foreignRecipe := testutil.AddTestRecipe(t, db, otherRound, "Stranger")

	tests := []struct {
		name           string
		voterToken     string
		requestBody    models.CastVoteRequest
		expectedStatus int
	}{
		{
			name:           "valid vote",
			voterToken:     voterToken,
			requestBody:    models.CastVoteRequest{RecipeID: recipeID, Category: "like", Comment: "looks great"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid category",
			voterToken:     voterToken,
			requestBody:    models.CastVoteRequest{RecipeID: recipeID, Category: "meh"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing recipe",
			voterToken:     voterToken,
			requestBody:    models.CastVoteRequest{Category: "like"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "recipe from another round",
			voterToken:     voterToken,
			requestBody:    models.CastVoteRequest{RecipeID: foreignRecipe, Category: "like"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown voter token",
			voterToken:     "not-a-token",
			requestBody:    models.CastVoteRequest{RecipeID: recipeID, Category: "like"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing voter token",
			voterToken:     "",
			requestBody:    models.CastVoteRequest{RecipeID: recipeID, Category: "like"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.voterToken != "" {
				headers["X-Voter-Token"] = tt.voterToken
			}
			req := testutil.MakeRequest("POST", "/rounds/"+slug+"/votes", tt.requestBody, headers)
			req.SetPathValue("slug", slug)
			w := httptest.NewRecorder()

			handler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestCastVoteUpdatesInPlace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	roundID, _, slug := testutil.CreateTestRound(t, db, cfg, "open")
	recipeID := testutil.AddTestRecipe(t, db, roundID, "Pho")
	voterToken := testutil.CreateTestVoter(t, db, roundID, "alice")

	cast := func(category string) models.CastVoteResponse {
		req := testutil.MakeRequest("POST", "/rounds/"+slug+"/votes",
			models.CastVoteRequest{RecipeID: recipeID, Category: category},
			map[string]string{"X-Voter-Token": voterToken})
		req.SetPathValue("slug", slug)
		w := httptest.NewRecorder()
		handler.CastVote(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.CastVoteResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	first := cast("like")
	second := cast("veto")

	if first.VoteID != second.VoteID {
		t.Errorf("Re-vote should keep the vote ID: %s vs %s", first.VoteID, second.VoteID)
	}

	// Only one row, with the latest category
	var count int
	var category string
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote WHERE round_id = $1`, roundID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if err := db.QueryRow(`SELECT category FROM vote WHERE id = $1`, first.VoteID).Scan(&category); err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 vote row, got %d", count)
	}
	if category != "veto" {
		t.Errorf("Expected category 'veto' after update, got '%s'", category)
	}
}

func TestCastVoteOnClosedRound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	roundID, _, slug := testutil.CreateTestRound(t, db, cfg, "closed")
	recipeID := testutil.AddTestRecipe(t, db, roundID, "Too Late Tacos")
	voterToken := testutil.CreateTestVoter(t, db, roundID, "alice")

	req := testutil.MakeRequest("POST", "/rounds/"+slug+"/votes",
		models.CastVoteRequest{RecipeID: recipeID, Category: "like"},
		map[string]string{"X-Voter-Token": voterToken})
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()

	handler.CastVote(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestGetMyVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	roundID, _, slug := testutil.CreateTestRound(t, db, cfg, "open")
	pho := testutil.AddTestRecipe(t, db, roundID, "Pho")
	tacos := testutil.AddTestRecipe(t, db, roundID, "Tacos")

	alice := testutil.CreateTestVoter(t, db, roundID, "alice")
	bob := testutil.CreateTestVoter(t, db, roundID, "bob")

	testutil.CastTestVote(t, db, roundID, pho, alice, "super_like")
	testutil.CastTestVote(t, db, roundID, tacos, alice, "ok")
	testutil.CastTestVote(t, db, roundID, pho, bob, "dislike")

	req := testutil.MakeRequest("GET", "/rounds/"+slug+"/my-votes", nil,
		map[string]string{"X-Voter-Token": alice})
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()

	handler.GetMyVotes(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Votes []models.Vote `json:"votes"`
	}
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Votes) != 2 {
		t.Fatalf("Expected 2 votes for alice, got %d", len(resp.Votes))
	}
	for _, v := range resp.Votes {
		if v.RecipeID != pho && v.RecipeID != tacos {
			t.Errorf("Unexpected recipe in votes: %s", v.RecipeID)
		}
	}

	// No token → unauthorized
	req = testutil.MakeRequest("GET", "/rounds/"+slug+"/my-votes", nil, nil)
	req.SetPathValue("slug", slug)
	w = httptest.NewRecorder()
	handler.GetMyVotes(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
