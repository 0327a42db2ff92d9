// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine implements the consensus voting algorithms used to turn a
household's recipe votes into rankings and meal selections.

The package is a pure function library: every operation reads caller-owned
slices of Candidate and Vote values and returns freshly computed results. It
holds no state between calls, performs no I/O, and never mutates its inputs,
so concurrent calls are safe without synchronization.

# Vote Model

Votes use a closed category set with fixed point values:

	super_like  +2
	like        +1
	ok           0
	dislike   -100
	veto      disqualifying (no point value)

A veto is a hard constraint, not a very negative number. It never enters a
score sum; it marks the candidate as vetoed, which excludes it from every
selection operation. A dislike is the "soft veto": -100 dominates any
realistic sum of positive votes without disqualifying outright.

# Scoring and Selection

ScoreCandidates sums category points per candidate and flags vetoes:

	scored := engine.ScoreCandidates(candidates, votes)

SelectTop filters out vetoed and negative-scoring candidates and returns the
best N. SmartSelect adds budget packing and a variety pass:

	budget := 5000 // cents
	picks := engine.SmartSelect(candidates, votes, 3, engine.Options{
		BudgetCents:   &budget,
		PreferVariety: true,
	})

# Schulze Ranking

SchulzeRank orders candidates by the Schulze method: a pairwise preference
matrix is built per voter (O(V*N^2)), strongest paths are computed with a
Floyd-Warshall style closure (O(N^3)), and candidates are ranked by pairwise
path wins. The cubic cost is fine at the intended scale (15-20 candidates per
round); callers with much larger slates should trim before ranking.

SchulzeRank is a pure ranking and ignores vetoes. Pre-filter with
ScoreCandidates or FilterByMinimumConsensus when exclusion is wanted.

# Consensus Metrics

Consensus reports per-candidate agreement figures: total votes, score,
consensus level (share of voters behind the single most common category),
positive percentage, and a 0-100 recommendation strength blending all three.

# Determinism

All operations are deterministic for a fixed input. Sorts are stable and ties
keep the original candidate order, so repeated calls with identically ordered
inputs return identical results.
*/
package engine
