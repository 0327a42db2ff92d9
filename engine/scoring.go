// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "sort"

// ScoreCandidates computes the aggregate score and veto flag for every
// candidate. A candidate's score is the sum of category points over all votes
// that reference it; any veto vote sets HasVeto without touching the sum.
// Votes referencing candidate IDs not in the slate are ignored.
//
// The result is sorted non-vetoed first, then score descending. The sort is
// stable, so candidates tied on both keys keep their input order.
func ScoreCandidates(candidates []Candidate, votes []Vote) []ScoredCandidate {
	inSlate := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		inSlate[c.ID] = true
	}

	scores := make(map[string]int, len(candidates))
	vetoed := make(map[string]bool)
	for _, v := range votes {
		if !inSlate[v.CandidateID] {
			continue
		}
		if v.Category.IsVeto() {
			vetoed[v.CandidateID] = true
			continue
		}
		scores[v.CandidateID] += v.Category.Points()
	}

	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = ScoredCandidate{
			Candidate: c,
			Score:     scores[c.ID],
			HasVeto:   vetoed[c.ID],
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].HasVeto != scored[j].HasVeto {
			return !scored[i].HasVeto
		}
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// SelectTop returns up to count candidates, best score first, after dropping
// every vetoed candidate and every candidate with a negative score. Fewer
// than count survivors is not an error; count <= 0 returns nil.
func SelectTop(candidates []Candidate, votes []Vote, count int) []Candidate {
	if count <= 0 {
		return nil
	}

	selected := make([]Candidate, 0, count)
	for _, sc := range ScoreCandidates(candidates, votes) {
		if sc.HasVeto || sc.Score < 0 {
			continue
		}
		selected = append(selected, sc.Candidate)
		if len(selected) == count {
			break
		}
	}
	return selected
}
