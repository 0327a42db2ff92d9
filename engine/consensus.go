// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

// DefaultConsensusThreshold is the minimum consensus level (0-100) used by
// FilterByMinimumConsensus when callers have no reason to pick another.
const DefaultConsensusThreshold = 60.0

// Recommendation strength blend. The weights and the score normalization cap
// are behavioral constants: changing them changes every recommendation, so
// they are fixed here rather than exposed as knobs.
const (
	strengthScoreWeight     = 0.4
	strengthConsensusWeight = 0.3
	strengthPositiveWeight  = 0.3
	strengthScoreCap        = 20
)

// ConsensusMetrics summarizes how a voter group feels about one candidate.
type ConsensusMetrics struct {
	TotalVotes int
	Score      int
	// ConsensusLevel is the percentage of voters behind the single most
	// common category, vetoes included. 100 means unanimous agreement,
	// whether the shared opinion is positive or negative.
	ConsensusLevel float64
	// PositivePercentage is the share of votes that are like or super_like.
	PositivePercentage float64
	HasVeto            bool
	CategoryCounts     map[VoteCategory]int
	// RecommendationStrength is a 0-100 convenience blend: 40% normalized
	// score (clamped to [0, 20]), 30% consensus level, 30% positive
	// percentage. Always 0 for vetoed candidates.
	RecommendationStrength float64
}

// Consensus computes agreement metrics for one candidate from the full vote
// set. Zero matching votes yields all-zero metrics, not an error.
func Consensus(candidate Candidate, votes []Vote) ConsensusMetrics {
	counts := make(map[VoteCategory]int)
	total := 0
	score := 0
	hasVeto := false

	for _, v := range votes {
		if v.CandidateID != candidate.ID {
			continue
		}
		total++
		counts[v.Category]++
		if v.Category.IsVeto() {
			hasVeto = true
			continue
		}
		score += v.Category.Points()
	}

	if total == 0 {
		return ConsensusMetrics{CategoryCounts: counts}
	}

	most := 0
	for _, n := range counts {
		if n > most {
			most = n
		}
	}
	positive := counts[Like] + counts[SuperLike]

	m := ConsensusMetrics{
		TotalVotes:         total,
		Score:              score,
		ConsensusLevel:     100 * float64(most) / float64(total),
		PositivePercentage: 100 * float64(positive) / float64(total),
		HasVeto:            hasVeto,
		CategoryCounts:     counts,
	}

	if !hasVeto {
		clamped := score
		if clamped < 0 {
			clamped = 0
		} else if clamped > strengthScoreCap {
			clamped = strengthScoreCap
		}
		normalized := 100 * float64(clamped) / strengthScoreCap
		m.RecommendationStrength = strengthScoreWeight*normalized +
			strengthConsensusWeight*m.ConsensusLevel +
			strengthPositiveWeight*m.PositivePercentage
	}

	return m
}

// FilterByMinimumConsensus keeps the candidates whose consensus level meets
// the threshold and which carry no veto. Slate order is preserved.
func FilterByMinimumConsensus(candidates []Candidate, votes []Vote, threshold float64) []Candidate {
	var kept []Candidate
	for _, c := range candidates {
		m := Consensus(c, votes)
		if m.HasVeto || m.ConsensusLevel < threshold {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
