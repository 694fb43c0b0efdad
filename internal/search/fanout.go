package search

import (
	"context"
	"sort"
	"strings"

	"github.com/jonathan/job-agent/internal/types"
)

// Registry maps portal names to their searchers. It is explicit configuration
// built once at startup and passed into the front door; there is no
// process-wide registry.
type Registry map[string]Searcher

// NewRegistry constructs a searcher for every known portal name.
func NewRegistry(opts SearcherOptions) (Registry, error) {
	reg := make(Registry, len(DomainMap))
	for name := range DomainMap {
		s, err := NewPortalSearcher(name, opts)
		if err != nil {
			return nil, err
		}
		reg[name] = s
	}
	return reg, nil
}

// Names returns the registered portal names in sorted order. Callers use the
// result as a fan-out portal list, and fan-out order decides aggregate posting
// order and rank tie-breaks, so it must not vary between identical calls.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PortalResult is the outcome of one portal's search within a fan-out.
// A failed portal carries its error and contributes zero hits; it never
// aborts the other portals.
type PortalResult struct {
	Portal string
	Hits   []types.Posting
	Err    error
}

// BuildQuery joins a profile's roles (OR-joined), skills (space-joined) and
// locations (OR-joined) into one free-text query string. This is a heuristic,
// not a structured query language; empty fields degrade to an empty string.
func BuildQuery(p *types.Profile) string {
	roles := strings.Join(p.Roles, " OR ")
	skills := strings.Join(p.Skills, " ")
	locs := strings.Join(p.Locations, " OR ")
	return strings.TrimSpace(roles + " " + skills + " " + locs)
}

// FanOut runs the query against each selected portal sequentially and returns
// one PortalResult per recognized portal. Unknown portal names are skipped
// without error. Every returned posting is tagged with its originating portal.
//
// Each portal receives a budget of max(1, maxResults/len(portals)). The floor
// division deliberately does not redistribute the remainder, so the sum of
// budgets can fall short of maxResults when the portal count does not divide
// it evenly.
func FanOut(ctx context.Context, reg Registry, portals []string, query string, maxResults int) []PortalResult {
	if len(portals) == 0 {
		return nil
	}

	budget := maxResults / len(portals)
	if budget < 1 {
		budget = 1
	}

	var results []PortalResult
	for _, portal := range portals {
		s, ok := reg[portal]
		if !ok {
			continue
		}

		hits, err := s.Search(ctx, query, budget)
		if err != nil {
			results = append(results, PortalResult{Portal: portal, Err: err})
			continue
		}

		for i := range hits {
			hits[i].Portal = portal
		}
		results = append(results, PortalResult{Portal: portal, Hits: hits})
	}

	return results
}

// Flatten merges per-portal hits into one aggregate list, preserving the
// portal iteration order.
func Flatten(results []PortalResult) []types.Posting {
	var all []types.Posting
	for _, r := range results {
		all = append(all, r.Hits...)
	}
	return all
}
