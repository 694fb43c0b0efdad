package ranking

import (
	"strings"
	"unicode"

	"github.com/jonathan/job-agent/internal/types"
)

// Weights for scoring components. Title carries the most signal; the résumé
// bonus is deliberately small so a verbose résumé cannot drown out the
// explicit roles/skills/locations.
const (
	titleWeight    = 0.5
	snippetWeight  = 0.25
	companyWeight  = 0.15
	locationWeight = 0.10
	resumeWeight   = 0.10
)

// profileSignal collects the lowercase token set of the profile's roles,
// skills and locations. Scoring is monotone in overlap with this set.
func profileSignal(p *types.Profile) map[string]struct{} {
	signal := make(map[string]struct{})
	for _, group := range [][]string{p.Roles, p.Skills, p.Locations} {
		for _, entry := range group {
			for _, tok := range tokenize(entry) {
				signal[tok] = struct{}{}
			}
		}
	}
	return signal
}

// resumeTokens collects the lowercase token set of the résumé text, if any.
func resumeTokens(p *types.Profile) map[string]struct{} {
	if p.ResumeText == "" {
		return nil
	}
	tokens := make(map[string]struct{})
	for _, tok := range tokenize(p.ResumeText) {
		tokens[tok] = struct{}{}
	}
	return tokens
}

// score computes the weighted overlap between the profile signal and the
// posting's text fields. Absent fields contribute zero (treated as empty
// strings); the result is monotone in signal/title overlap and depends only
// on its inputs.
func score(signal, resume map[string]struct{}, posting *types.Posting) float64 {
	s := titleWeight*overlapFraction(signal, posting.Title) +
		snippetWeight*overlapFraction(signal, posting.Snippet) +
		companyWeight*overlapFraction(signal, posting.Company) +
		locationWeight*overlapFraction(signal, posting.Location)

	// Small bonus when the posting title echoes the résumé vocabulary.
	// Normalized by the résumé token set, which is constant across one
	// ranking call, so extra title tokens can only raise the bonus.
	if len(resume) > 0 {
		s += resumeWeight * overlapFraction(resume, posting.Title)
	}

	return s
}

// overlapFraction returns the fraction of signal tokens present in text.
// An empty signal or empty text scores zero. The denominator is the signal
// size, which is constant across the postings of one ranking call, so adding
// a matching signal token can never lower one posting relative to another.
func overlapFraction(signal map[string]struct{}, text string) float64 {
	if len(signal) == 0 || text == "" {
		return 0.0
	}

	present := make(map[string]struct{})
	for _, tok := range tokenize(text) {
		present[tok] = struct{}{}
	}

	matches := 0
	for tok := range signal {
		if _, ok := present[tok]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(signal))
}

// tokenize lowercases text and splits it on any non-letter, non-digit rune.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
