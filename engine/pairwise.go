// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

// voterStanding is one voter's position on one candidate: summed points from
// their scored votes plus a veto flag kept out of the arithmetic.
type voterStanding struct {
	points int
	veto   bool
}

// beats reports whether a voter strictly prefers candidate a over b. A veto
// ranks below every scored standing and ties with another veto.
func (a voterStanding) beats(b voterStanding) bool {
	if a.veto {
		return false
	}
	if b.veto {
		return true
	}
	return a.points > b.points
}

// BuildPairwiseMatrix derives the aggregate pairwise preference counts for
// the slate. Cell [i][j] is the number of voters whose score for
// candidates[i] strictly exceeds their score for candidates[j]. A voter who
// cast no vote on a candidate stands at 0, the "ok" level.
//
// Matrix indices follow candidate slice order; the caller keeps that mapping
// to interpret the output. Cost is O(V*N^2) for V distinct voters, which is
// inherent to the pairwise method.
func BuildPairwiseMatrix(candidates []Candidate, votes []Vote) [][]int {
	n := len(candidates)
	index := make(map[string]int, n)
	for i, c := range candidates {
		index[c.ID] = i
	}

	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}

	standings := make(map[string][]voterStanding)
	for _, v := range votes {
		i, ok := index[v.CandidateID]
		if !ok {
			continue
		}
		row := standings[v.VoterID]
		if row == nil {
			row = make([]voterStanding, n)
			standings[v.VoterID] = row
		}
		if v.Category.IsVeto() {
			row[i].veto = true
		} else {
			row[i].points += v.Category.Points()
		}
	}

	for _, row := range standings {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				if row[i].beats(row[j]) {
					matrix[i][j]++
				}
			}
		}
	}

	return matrix
}
