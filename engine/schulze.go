// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "sort"

// StrongestPaths computes the Schulze strongest-path matrix from a pairwise
// preference matrix. Cell [i][j] is the strength of the strongest directed
// path from i to j, where a path is as strong as its weakest link.
//
// The closure is Floyd-Warshall shaped and costs O(N^3). At the intended
// scale (15-20 candidates per round) that is negligible; slates past ~50
// candidates get noticeably slow.
func StrongestPaths(pairwise [][]int) [][]int {
	n := len(pairwise)
	paths := make([][]int, n)
	for i := range paths {
		paths[i] = append([]int(nil), pairwise[i]...)
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			for j := 0; j < n; j++ {
				if j == i || j == k {
					continue
				}
				if s := min(paths[i][k], paths[k][j]); s > paths[i][j] {
					paths[i][j] = s
				}
			}
		}
	}

	return paths
}

// SchulzeRank orders candidates by the Schulze method: each candidate is
// ranked by how many opponents it beats on strongest-path strength. The sort
// is stable, so candidates with equal win counts keep slate order.
//
// This is a pure ranking; vetoes and negative scores are not consulted.
// Callers wanting exclusion must pre-filter the slate.
func SchulzeRank(candidates []Candidate, votes []Vote) []Candidate {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	paths := StrongestPaths(BuildPairwiseMatrix(candidates, votes))

	wins := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && paths[i][j] > paths[j][i] {
				wins[i]++
			}
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return wins[order[a]] > wins[order[b]]
	})

	ranked := make([]Candidate, n)
	for i, idx := range order {
		ranked[i] = candidates[idx]
	}
	return ranked
}
