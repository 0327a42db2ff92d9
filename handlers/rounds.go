// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/dishvote/auth"
	"github.com/danielhkuo/dishvote/cliparse"
	"github.com/danielhkuo/dishvote/middleware"
	"github.com/danielhkuo/dishvote/models"
)

type RoundHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRoundHandler(db *sql.DB, cfg cliparse.Config) *RoundHandler {
	return &RoundHandler{db: db, cfg: cfg}
}

// CreateRound handles POST /rounds
func (h *RoundHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoundRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.CreatorName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator_name is required")
		return
	}
	if req.BudgetCents != nil && *req.BudgetCents < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "budget_cents cannot be negative")
		return
	}
	mealCount := req.MealCount
	if mealCount <= 0 {
		mealCount = models.DefaultMealCount
	}

	roundID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate round ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create round")
		return
	}

	adminKey := auth.GenerateAdminKey(roundID, h.cfg.AdminKeySalt)

	_, err = h.db.Exec(`
		INSERT INTO round (id, title, description, creator_name, method, status, budget_cents, meal_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, roundID, req.Title, req.Description, req.CreatorName,
		models.MethodConsensus, models.StatusDraft, req.BudgetCents, mealCount, time.Now())

	if err != nil {
		slog.Error("failed to insert round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create round")
		return
	}

	slog.Info("round created", "round_id", roundID, "creator", req.CreatorName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRoundResponse{
		RoundID:  roundID,
		AdminKey: adminKey,
	})
}

// GetRoundAdmin handles GET /rounds/:id/admin
func (h *RoundHandler) GetRoundAdmin(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	if roundID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "round_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(roundID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	round, err := queryRound(h.db, `WHERE id = $1`, roundID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	recipes, err := loadRoundRecipes(h.db, roundID)
	if err != nil {
		slog.Error("failed to query recipes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.RoundWithRecipes{
		Round:   *round,
		Recipes: recipes,
	})
}

// AddRecipe handles POST /rounds/:id/recipes
func (h *RoundHandler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	if roundID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "round_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(roundID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.AddRecipeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.CostCents != nil && *req.CostCents < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cost_cents cannot be negative")
		return
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	// Recipes can only be added while the round is a draft
	var status string
	err := h.db.QueryRow("SELECT status FROM round WHERE id = $1", roundID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add recipes to non-draft round")
		return
	}

	recipeID := uuid.NewString()
	var cuisine *string
	if req.Cuisine != "" {
		cuisine = &req.Cuisine
	}

	_, err = h.db.Exec(`
		INSERT INTO recipe (id, round_id, name, cuisine, difficulty, cost_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, recipeID, roundID, req.Name, cuisine, difficulty, req.CostCents)

	if err != nil {
		slog.Error("failed to insert recipe", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add recipe")
		return
	}

	slog.Info("recipe added", "round_id", roundID, "recipe_id", recipeID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.AddRecipeResponse{
		RecipeID: recipeID,
	})
}

// PublishRound handles POST /rounds/:id/publish
func (h *RoundHandler) PublishRound(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	if roundID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "round_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(roundID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var status string
	err := h.db.QueryRow("SELECT status FROM round WHERE id = $1", roundID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Round is already published")
		return
	}

	// A round with nothing to vote on can't open
	var recipeCount int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM recipe WHERE round_id = $1", roundID).Scan(&recipeCount); err != nil {
		slog.Error("failed to count recipes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if recipeCount == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot publish a round with no recipes")
		return
	}

	shareSlug := auth.GenerateShareSlug(roundID, h.cfg.SlugSalt)

	_, err = h.db.Exec(`
		UPDATE round SET status = $1, share_slug = $2 WHERE id = $3
	`, models.StatusOpen, shareSlug, roundID)

	if err != nil {
		slog.Error("failed to publish round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish round")
		return
	}

	slog.Info("round published", "round_id", roundID, "share_slug", shareSlug)

	middleware.JSONResponse(w, http.StatusOK, models.PublishRoundResponse{
		ShareSlug: shareSlug,
		ShareURL:  h.cfg.BaseURL + "/rounds/" + shareSlug,
	})
}

// CloseRound handles POST /rounds/:id/close
// Closing seals the round and computes the final consensus snapshot.
func (h *RoundHandler) CloseRound(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("id")
	if roundID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "round_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(roundID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	round, err := queryRound(h.db, `WHERE id = $1`, roundID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if round.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Round is not open")
		return
	}

	results, err := ComputeConsensusResults(h.db, roundID, round.BudgetCents, round.MealCount)
	if err != nil {
		slog.Error("failed to compute results", "error", err, "round_id", roundID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute results")
		return
	}

	closedAt := time.Now()
	snapshotID := uuid.NewString()
	snapshot := models.ResultSnapshot{
		ID:         snapshotID,
		RoundID:    roundID,
		Method:     round.Method,
		ComputedAt: closedAt,
		Rankings:   results.Rankings,
		Selection:  results.Selection,
		InputsHash: results.InputsHash,
	}

	payload, err := json.Marshal(struct {
		Rankings   []models.RecipeStats `json:"rankings"`
		Selection  []string             `json:"selection"`
		InputsHash string               `json:"inputs_hash"`
	}{results.Rankings, results.Selection, results.InputsHash})
	if err != nil {
		slog.Error("failed to marshal snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close round")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO result_snapshot (id, round_id, method, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, snapshotID, roundID, round.Method, closedAt, string(payload))
	if err != nil {
		slog.Error("failed to insert snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close round")
		return
	}

	_, err = tx.Exec(`
		UPDATE round SET status = $1, closed_at = $2, final_snapshot_id = $3 WHERE id = $4
	`, models.StatusClosed, closedAt, snapshotID, roundID)
	if err != nil {
		slog.Error("failed to close round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close round")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit close", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close round")
		return
	}

	slog.Info("round closed", "round_id", roundID, "snapshot_id", snapshotID,
		"selected", len(results.Selection))

	middleware.JSONResponse(w, http.StatusOK, models.CloseRoundResponse{
		ClosedAt: closedAt,
		Snapshot: snapshot,
	})
}

// queryRound fetches one round by an arbitrary WHERE clause with one
// placeholder argument.
func queryRound(db *sql.DB, where string, arg any) (*models.Round, error) {
	var round models.Round
	err := db.QueryRow(`
		SELECT id, title, description, creator_name, method, status,
		       share_slug, budget_cents, meal_count, closes_at, closed_at,
		       final_snapshot_id, created_at
		FROM round `+where, arg).Scan(
		&round.ID, &round.Title, &round.Description, &round.CreatorName,
		&round.Method, &round.Status, &round.ShareSlug, &round.BudgetCents,
		&round.MealCount, &round.ClosesAt, &round.ClosedAt,
		&round.FinalSnapshotID, &round.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &round, nil
}
