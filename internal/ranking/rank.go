// Package ranking scores job postings against a candidate profile and keeps
// the top-K. Rank is a pure function: no randomness, no clock, no external
// calls, so identical inputs always produce identical ordered output.
package ranking

import (
	"sort"

	"github.com/jonathan/job-agent/internal/types"
)

// Rank computes a relevance score for each posting and returns the topK highest
// scoring ones in descending score order. Postings with equal score retain
// their relative input order (stable sort), so the output is reproducible for
// permuted-but-equal-score inputs given the original indices.
//
// The input slice is not mutated; scores are assigned on the returned copies.
func Rank(profile *types.Profile, postings []types.Posting, topK int) []types.Posting {
	signal := profileSignal(profile)
	resume := resumeTokens(profile)

	ranked := make([]types.Posting, len(postings))
	copy(ranked, postings)
	for i := range ranked {
		ranked[i].Score = score(signal, resume, &ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topK < 0 {
		topK = 0
	}
	if topK > len(ranked) {
		topK = len(ranked)
	}
	return ranked[:topK]
}
