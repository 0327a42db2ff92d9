// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/dishvote/auth"
	"github.com/danielhkuo/dishvote/cliparse"
	"github.com/danielhkuo/dishvote/engine"
	"github.com/danielhkuo/dishvote/middleware"
	"github.com/danielhkuo/dishvote/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// ClaimUsername handles POST /rounds/:slug/claim-username
// Hands out a voter token in exchange for a display name unique within
// the round. The token is the voter's only credential; losing it means
// claiming a new name.
func (h *VotingHandler) ClaimUsername(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	var req models.ClaimUsernameRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if n := utf8.RuneCountInString(username); n < 2 || n > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
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
	if round.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Round is not open for voting")
		return
	}

	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO participant_claim (round_id, username, voter_token, created_at)
		VALUES ($1, $2, $3, $4)
	`, round.ID, username, voterToken, time.Now())

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Username is already taken in this round")
			return
		}
		slog.Error("failed to insert claim", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim username")
		return
	}

	slog.Info("username claimed", "round_id", round.ID, "username", username)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimUsernameResponse{
		VoterToken: voterToken,
	})
}

// CastVote handles POST /rounds/:slug/votes
// One vote per (voter, recipe); casting again overwrites the earlier vote.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.RecipeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "recipe_id is required")
		return
	}
	if !engine.VoteCategory(req.Category).Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"category must be one of: super_like, like, ok, dislike, veto")
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
	if round.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Round is not open for voting")
		return
	}

	if err := h.requireClaim(round.ID, voterToken); err != nil {
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown voter token; claim a username first")
			return
		}
		slog.Error("failed to check claim", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The recipe must belong to this round; a valid UUID from another
	// round is still a bad request.
	var recipeRound string
	err = h.db.QueryRow("SELECT round_id FROM recipe WHERE id = $1", req.RecipeID).Scan(&recipeRound)
	if err == sql.ErrNoRows || (err == nil && recipeRound != round.ID) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Recipe not found in this round")
		return
	}
	if err != nil {
		slog.Error("failed to query recipe", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.SlugSalt)
	userAgent := r.UserAgent()

	_, err = h.db.Exec(`
		INSERT INTO vote (id, round_id, recipe_id, voter_token, category, comment, ip_hash, user_agent, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (round_id, recipe_id, voter_token) DO UPDATE SET
			category = excluded.category,
			comment = excluded.comment,
			ip_hash = excluded.ip_hash,
			user_agent = excluded.user_agent,
			cast_at = excluded.cast_at
	`, uuid.NewString(), round.ID, req.RecipeID, voterToken,
		req.Category, req.Comment, ipHash, userAgent, time.Now())

	if err != nil {
		slog.Error("failed to upsert vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	// On re-vote the original row (and its ID) survives, so read it back.
	var voteID string
	err = h.db.QueryRow(`
		SELECT id FROM vote WHERE round_id = $1 AND recipe_id = $2 AND voter_token = $3
	`, round.ID, req.RecipeID, voterToken).Scan(&voteID)
	if err != nil {
		slog.Error("failed to read back vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote cast", "round_id", round.ID, "recipe_id", req.RecipeID, "category", req.Category)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		VoteID:  voteID,
		Message: "Vote recorded",
	})
}

// GetMyVotes handles GET /rounds/:slug/my-votes
// Returns the calling voter's own votes so a reopened browser can show
// what was already cast.
func (h *VotingHandler) GetMyVotes(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "share slug is required")
		return
	}

	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header is required")
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

	if err := h.requireClaim(round.ID, voterToken); err != nil {
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown voter token")
			return
		}
		slog.Error("failed to check claim", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, round_id, recipe_id, category, comment, cast_at
		FROM vote WHERE round_id = $1 AND voter_token = $2 ORDER BY cast_at
	`, round.ID, voterToken)
	if err != nil {
		slog.Error("failed to query votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var comment sql.NullString
		if err := rows.Scan(&v.ID, &v.RoundID, &v.RecipeID, &v.Category, &comment, &v.CastAt); err != nil {
			slog.Error("failed to scan vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		v.Comment = comment.String
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{"votes": votes})
}

// requireClaim verifies the voter token was handed out for this round.
// Returns sql.ErrNoRows when the token is unknown.
func (h *VotingHandler) requireClaim(roundID, voterToken string) error {
	var username string
	return h.db.QueryRow(`
		SELECT username FROM participant_claim WHERE round_id = $1 AND voter_token = $2
	`, roundID, voterToken).Scan(&username)
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// String matching is the lowest common denominator across lib/pq and
// modernc sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}
