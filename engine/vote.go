// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "time"

// VoteCategory is one of the five closed vote categories.
type VoteCategory string

const (
	SuperLike VoteCategory = "super_like"
	Like      VoteCategory = "like"
	OK        VoteCategory = "ok"
	Dislike   VoteCategory = "dislike"
	Veto      VoteCategory = "veto"
)

// Fixed point values for the scored categories. Dislike is large enough that
// a single one outweighs any realistic sum of positive votes.
const (
	superLikePoints = 2
	likePoints      = 1
	okPoints        = 0
	dislikePoints   = -100
)

// Points returns the score contribution of a scored category. Veto has no
// point value and returns 0; callers must check IsVeto before summing so a
// veto never leaks into arithmetic.
func (c VoteCategory) Points() int {
	switch c {
	case SuperLike:
		return superLikePoints
	case Like:
		return likePoints
	case Dislike:
		return dislikePoints
	default:
		return okPoints
	}
}

// IsVeto reports whether the category disqualifies a candidate outright.
func (c VoteCategory) IsVeto() bool {
	return c == Veto
}

// Valid reports whether c is one of the five known categories.
func (c VoteCategory) Valid() bool {
	switch c {
	case SuperLike, Like, OK, Dislike, Veto:
		return true
	}
	return false
}

// Candidate is an item being voted on. The engine only reads these fields;
// candidates are created and owned by the caller.
type Candidate struct {
	ID         string
	CostCents  *int // nil when no cost estimate is known
	Cuisine    string
	Difficulty string
}

// Vote is an immutable preference record cast by one voter on one candidate.
// Voter and candidate IDs are opaque keys. The engine assumes at most one
// vote per (voter, candidate) pair; if a caller supplies duplicates their
// points are summed, not deduplicated.
type Vote struct {
	VoterID     string
	CandidateID string
	Category    VoteCategory
	Comment     string
	CastAt      time.Time
}

// ScoredCandidate pairs a candidate with its aggregate score and veto flag.
// Computed fresh on every call, never retained by the engine.
type ScoredCandidate struct {
	Candidate Candidate
	Score     int
	HasVeto   bool
}
