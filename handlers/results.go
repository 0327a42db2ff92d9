// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dishvote/cliparse"
	"github.com/danielhkuo/dishvote/middleware"
	"github.com/danielhkuo/dishvote/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetRound handles GET /rounds/:slug
// The voter-facing view: the round plus its recipes, never any votes.
func (h *ResultsHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	round, err := queryRound(h.db, `WHERE share_slug = $1`, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	recipes, err := loadRoundRecipes(h.db, round.ID)
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

// GetResults handles GET /rounds/:slug/results
// Results stay sealed until the round is closed; after that they come from
// the stored snapshot, never recomputed.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	round, err := queryRound(h.db, `WHERE share_slug = $1`, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if round.Status != models.StatusClosed || round.FinalSnapshotID == nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are sealed until the round is closed")
		return
	}

	snapshot := models.ResultSnapshot{RoundID: round.ID}
	var payload string
	err = h.db.QueryRow(`
		SELECT id, method, computed_at, payload FROM result_snapshot WHERE id = $1
	`, *round.FinalSnapshotID).Scan(&snapshot.ID, &snapshot.Method, &snapshot.ComputedAt, &payload)
	if err != nil {
		slog.Error("failed to query snapshot", "error", err, "snapshot_id", *round.FinalSnapshotID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var body struct {
		Rankings   []models.RecipeStats `json:"rankings"`
		Selection  []string             `json:"selection"`
		InputsHash string               `json:"inputs_hash"`
	}
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		slog.Error("failed to decode snapshot payload", "error", err, "snapshot_id", snapshot.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Corrupt result snapshot")
		return
	}
	snapshot.Rankings = body.Rankings
	snapshot.Selection = body.Selection
	snapshot.InputsHash = body.InputsHash

	voterCount, err := h.countVoters(round.ID)
	if err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"round":       round,
		"snapshot":    snapshot,
		"voter_count": voterCount,
	})
}

// GetVoteCount handles GET /rounds/:slug/vote-count
// Live participation count, safe to show while voting is in progress.
func (h *ResultsHandler) GetVoteCount(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	round, err := queryRound(h.db, `WHERE share_slug = $1`, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voterCount, err := h.countVoters(round.ID)
	if err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int{"voter_count": voterCount})
}

// GetPreview handles GET /rounds/:slug/preview
// Minimal metadata for link unfurls: no recipes, no votes, no results.
func (h *ResultsHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	round, err := queryRound(h.db, `WHERE share_slug = $1`, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Round not found")
		return
	}
	if err != nil {
		slog.Error("failed to query round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var recipeCount int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM recipe WHERE round_id = $1", round.ID).Scan(&recipeCount); err != nil {
		slog.Error("failed to count recipes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voterCount, err := h.countVoters(round.ID)
	if err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RoundPreviewResponse{
		Title:       round.Title,
		Status:      round.Status,
		RecipeCount: recipeCount,
		VoterCount:  voterCount,
	})
}

// Health handles GET /health
func (h *ResultsHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ResultsHandler) countVoters(roundID string) (int, error) {
	var n int
	err := h.db.QueryRow(`
		SELECT COUNT(DISTINCT voter_token) FROM vote WHERE round_id = $1
	`, roundID).Scan(&n)
	return n, err
}
