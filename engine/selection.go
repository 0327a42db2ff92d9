// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

// Variety bonus points for a cuisine or difficulty not yet present in the
// running selection.
const (
	cuisineBonus    = 10
	difficultyBonus = 5
)

// Options configures SmartSelect.
type Options struct {
	// BudgetCents caps the summed cost of the selection when non-nil.
	// Candidates without a cost estimate count as free.
	BudgetCents *int
	// PreferVariety enables the variety pass. The pass tracks cuisine and
	// difficulty spread and computes a per-candidate bonus, but does not
	// reorder the slate; see WeightedVariety.
	PreferVariety bool
	// WeightedVariety makes the variety bonus actually drive selection
	// order (greedy, highest score-plus-bonus first). Off by default to
	// keep parity with the historical behavior, where the bonus was
	// tracked but never applied.
	WeightedVariety bool
}

// DefaultOptions returns the standard SmartSelect configuration: variety
// pass on, no budget, bonus not applied to ordering.
func DefaultOptions() Options {
	return Options{PreferVariety: true}
}

// SmartSelect produces the final meal slate. The pipeline runs in a fixed
// order for reproducibility:
//
//  1. Score all candidates.
//  2. Drop vetoed candidates.
//  3. Drop candidates with a negative score.
//  4. If a budget is set, greedily accept candidates in score order while
//     the running cost stays within budget. Over-budget candidates are
//     skipped, not terminal: a cheaper candidate further down the list can
//     still be accepted.
//  5. If PreferVariety is set, run the variety pass.
//  6. Truncate to count.
//
// The budget step is score-optimal-first, not cost-optimal: it does not
// search for the globally cheapest combination. That is a known limitation
// of the greedy policy, accepted for predictability.
//
// count <= 0 or an empty eligible set returns nil, never an error.
func SmartSelect(candidates []Candidate, votes []Vote, count int, opts Options) []Candidate {
	if count <= 0 {
		return nil
	}

	var eligible []ScoredCandidate
	for _, sc := range ScoreCandidates(candidates, votes) {
		if sc.HasVeto || sc.Score < 0 {
			continue
		}
		// ScoreCandidates already ordered these score-descending.
		eligible = append(eligible, sc)
	}

	if opts.BudgetCents != nil {
		eligible = packWithinBudget(eligible, *opts.BudgetCents, count)
	}

	if opts.PreferVariety {
		eligible = varietyPass(eligible, opts.WeightedVariety)
	}

	if len(eligible) > count {
		eligible = eligible[:count]
	}

	picks := make([]Candidate, len(eligible))
	for i, sc := range eligible {
		picks[i] = sc.Candidate
	}
	return picks
}

// packWithinBudget walks the score-ordered list and accepts candidates whose
// cost fits in the remaining budget, stopping once count are accepted. A
// candidate that would bust the budget is skipped and the scan continues.
func packWithinBudget(scored []ScoredCandidate, budget, count int) []ScoredCandidate {
	var accepted []ScoredCandidate
	spent := 0
	for _, sc := range scored {
		if len(accepted) == count {
			break
		}
		cost := 0
		if sc.Candidate.CostCents != nil {
			cost = *sc.Candidate.CostCents
		}
		if spent+cost > budget {
			continue
		}
		spent += cost
		accepted = append(accepted, sc)
	}
	return accepted
}

// varietyPass re-derives the selection while tracking how often each cuisine
// and difficulty has appeared so far.
//
// In the default (unweighted) mode the bonus is computed and the counts are
// updated, but candidates are appended in unchanged score order, so the pass
// has no observable effect on the output. Whether the bonus should steer
// selection is an open product question; WeightedVariety answers it yes and
// greedily picks the highest score-plus-bonus candidate at each step.
func varietyPass(scored []ScoredCandidate, weighted bool) []ScoredCandidate {
	cuisinesSeen := make(map[string]int)
	difficultiesSeen := make(map[string]int)

	if !weighted {
		out := make([]ScoredCandidate, 0, len(scored))
		for _, sc := range scored {
			_ = varietyBonus(sc.Candidate, cuisinesSeen, difficultiesSeen)
			markSeen(sc.Candidate, cuisinesSeen, difficultiesSeen)
			out = append(out, sc)
		}
		return out
	}

	remaining := append([]ScoredCandidate(nil), scored...)
	out := make([]ScoredCandidate, 0, len(scored))
	for len(remaining) > 0 {
		best := 0
		bestTotal := remaining[0].Score + varietyBonus(remaining[0].Candidate, cuisinesSeen, difficultiesSeen)
		for i := 1; i < len(remaining); i++ {
			total := remaining[i].Score + varietyBonus(remaining[i].Candidate, cuisinesSeen, difficultiesSeen)
			if total > bestTotal {
				best, bestTotal = i, total
			}
		}
		pick := remaining[best]
		markSeen(pick.Candidate, cuisinesSeen, difficultiesSeen)
		out = append(out, pick)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return out
}

// varietyBonus awards points for tags not yet represented in the running
// selection. Candidates with an unknown cuisine or difficulty get no bonus
// for that tag and do not consume it either.
func varietyBonus(c Candidate, cuisinesSeen, difficultiesSeen map[string]int) int {
	bonus := 0
	if c.Cuisine != "" && cuisinesSeen[c.Cuisine] == 0 {
		bonus += cuisineBonus
	}
	if c.Difficulty != "" && difficultiesSeen[c.Difficulty] == 0 {
		bonus += difficultyBonus
	}
	return bonus
}

func markSeen(c Candidate, cuisinesSeen, difficultiesSeen map[string]int) {
	if c.Cuisine != "" {
		cuisinesSeen[c.Cuisine]++
	}
	if c.Difficulty != "" {
		difficultiesSeen[c.Difficulty]++
	}
}
