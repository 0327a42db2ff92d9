// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/dishvote/auth"
	"github.com/danielhkuo/dishvote/cliparse"
	"github.com/danielhkuo/dishvote/db"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// Each test gets its own database; it disappears when the test closes it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
		SlugSalt:     "test-slug-salt",
		BaseURL:      "http://localhost:3318",
	}
}

// CreateTestRound creates a round in the database and returns its ID,
// admin key, and (for open/closed rounds) share slug.
// status should be "draft", "open", or "closed"
func CreateTestRound(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string) (roundID, adminKey, shareSlug string) {
	t.Helper()

	roundID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(roundID, cfg.AdminKeySalt)

	var slug *string
	if status == "open" || status == "closed" {
		s := auth.GenerateShareSlug(roundID, cfg.SlugSalt)
		slug = &s
		shareSlug = s
	}

	var closedAt *time.Time
	if status == "closed" {
		now := time.Now()
		closedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO round (id, title, description, creator_name, method, status, share_slug, meal_count, closed_at, created_at)
		VALUES ($1, 'Test Round', 'A test round', 'TestUser', 'consensus', $2, $3, 3, $4, $5)
	`, roundID, status, slug, closedAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test round: %v", err)
	}

	return roundID, adminKey, shareSlug
}

// SetRoundBudget sets the budget and meal count on an existing round
func SetRoundBudget(t *testing.T, conn *sql.DB, roundID string, budgetCents, mealCount int) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE round SET budget_cents = $1, meal_count = $2 WHERE id = $3
	`, budgetCents, mealCount, roundID)
	if err != nil {
		t.Fatalf("Failed to set round budget: %v", err)
	}
}

// AddTestRecipe adds a recipe to a round and returns the recipe ID
func AddTestRecipe(t *testing.T, conn *sql.DB, roundID, name string) string {
	t.Helper()

	recipeID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO recipe (id, round_id, name, difficulty)
		VALUES ($1, $2, $3, 'medium')
	`, recipeID, roundID, name)
	if err != nil {
		t.Fatalf("Failed to create test recipe: %v", err)
	}

	return recipeID
}

// AddTestRecipeFull adds a recipe with cuisine and cost
func AddTestRecipeFull(t *testing.T, conn *sql.DB, roundID, name, cuisine, difficulty string, costCents int) string {
	t.Helper()

	recipeID, _ := auth.GenerateID(12)
	var c *string
	if cuisine != "" {
		c = &cuisine
	}
	_, err := conn.Exec(`
		INSERT INTO recipe (id, round_id, name, cuisine, difficulty, cost_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, recipeID, roundID, name, c, difficulty, costCents)
	if err != nil {
		t.Fatalf("Failed to create test recipe: %v", err)
	}

	return recipeID
}

// CreateTestVoter claims a username for a round and returns the voter token
func CreateTestVoter(t *testing.T, conn *sql.DB, roundID, username string) string {
	t.Helper()

	voterToken, _ := auth.GenerateVoterToken()
	_, err := conn.Exec(`
		INSERT INTO participant_claim (round_id, username, voter_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, roundID, username, voterToken, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterToken
}

// CastTestVote inserts a vote directly into the database
func CastTestVote(t *testing.T, conn *sql.DB, roundID, recipeID, voterToken, category string) string {
	t.Helper()

	voteID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO vote (id, round_id, recipe_id, voter_token, category, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, roundID, recipeID, voterToken, category, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
