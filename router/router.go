// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/dishvote/cliparse"
	"github.com/danielhkuo/dishvote/handlers"
	"github.com/danielhkuo/dishvote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	roundHandler := handlers.NewRoundHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", resultsHandler.Health)

	// Round management (admin operations)
	mux.HandleFunc("POST /rounds", middleware.WithLogging(roundHandler.CreateRound))
	mux.HandleFunc("GET /rounds/{id}/admin", middleware.WithLogging(roundHandler.GetRoundAdmin))
	mux.HandleFunc("POST /rounds/{id}/recipes", middleware.WithLogging(roundHandler.AddRecipe))
	mux.HandleFunc("POST /rounds/{id}/publish", middleware.WithLogging(roundHandler.PublishRound))
	mux.HandleFunc("POST /rounds/{id}/close", middleware.WithLogging(roundHandler.CloseRound))

	// Voting operations (public)
	mux.HandleFunc("POST /rounds/{slug}/claim-username", middleware.WithLogging(votingHandler.ClaimUsername))
	mux.HandleFunc("POST /rounds/{slug}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /rounds/{slug}/my-votes", middleware.WithLogging(votingHandler.GetMyVotes))

	// Results retrieval (public, with sealed results)
	mux.HandleFunc("GET /rounds/{slug}", middleware.WithLogging(resultsHandler.GetRound))
	mux.HandleFunc("GET /rounds/{slug}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /rounds/{slug}/vote-count", middleware.WithLogging(resultsHandler.GetVoteCount))
	mux.HandleFunc("GET /rounds/{slug}/preview", middleware.WithLogging(resultsHandler.GetPreview))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dishvote API v1"))
	})

	return mux
}
