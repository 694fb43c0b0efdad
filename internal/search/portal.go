// Package search provides per-portal job searching and the fan-out that
// aggregates portal results for a request.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/job-agent/internal/fetch"
	"github.com/jonathan/job-agent/internal/types"
)

// Searcher is the contract one named portal exposes to the fan-out: given a
// free-text query return a bounded list of postings. maxResults must be >= 1;
// an empty query degrades to whatever the portal backend returns unscoped.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.Posting, error)
}

// DomainMap maps known portal names to the site domain used to scope
// web searches for that portal.
var DomainMap = map[string]string{
	"linkedin":     "linkedin.com/jobs",
	"naukri":       "naukri.com",
	"indeed":       "indeed.com",
	"hirist":       "hirist.tech",
	"timesjobs":    "timesjobs.com",
	"talentoindia": "talentoindia.com",
}

// searchEndpoint is the HTML results endpoint of the web search backend.
// Portals without a public search API are reached through a site-scoped
// web search instead of scraping the portal directly.
const searchEndpoint = "https://html.duckduckgo.com/html/"

// PortalSearcher searches one named portal via a site-scoped web search and
// parses the result list. Instances are read-only configuration plus a
// stateless search call, so they are safe for reuse across requests.
type PortalSearcher struct {
	name       string
	domain     string
	endpoint   string
	opts       *fetch.Options
	useBrowser bool
	logger     *zap.Logger
}

// SearcherOptions configures portal searcher construction.
type SearcherOptions struct {
	Fetch      *fetch.Options
	UseBrowser bool
	Logger     *zap.Logger
	// Endpoint overrides the web-search endpoint, used by tests.
	Endpoint string
}

// NewPortalSearcher creates a searcher for a known portal name.
// Returns an error for portal names outside DomainMap.
func NewPortalSearcher(name string, opts SearcherOptions) (*PortalSearcher, error) {
	domain, ok := DomainMap[name]
	if !ok {
		return nil, fmt.Errorf("unknown portal: %s", name)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = searchEndpoint
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PortalSearcher{
		name:       name,
		domain:     domain,
		endpoint:   endpoint,
		opts:       opts.Fetch,
		useBrowser: opts.UseBrowser,
		logger:     logger,
	}, nil
}

// Name returns the portal name this searcher is bound to.
func (s *PortalSearcher) Name() string { return s.name }

// Search queries the portal and returns up to maxResults postings.
func (s *PortalSearcher) Search(ctx context.Context, query string, maxResults int) ([]types.Posting, error) {
	if maxResults < 1 {
		maxResults = 1
	}

	searchURL := s.buildSearchURL(query)
	result, err := fetch.URL(ctx, searchURL, s.opts)
	if err != nil {
		return nil, fmt.Errorf("portal %s: %w", s.name, err)
	}

	html := result.HTML
	if s.useBrowser && fetch.ShouldUseBrowser(html) {
		s.logger.Debug("static fetch too small, rendering with browser",
			zap.String("portal", s.name))
		rendered, berr := fetch.WithBrowser(ctx, searchURL, fetch.DefaultTimeout)
		if berr != nil {
			return nil, fmt.Errorf("portal %s: %w", s.name, berr)
		}
		html = rendered
	}

	hits, err := parseResults(html, maxResults)
	if err != nil {
		return nil, fmt.Errorf("portal %s: %w", s.name, err)
	}

	s.logger.Debug("portal search completed",
		zap.String("portal", s.name),
		zap.Int("hits", len(hits)))

	return hits, nil
}

// buildSearchURL scopes the query to the portal's domain. No escaping of the
// query beyond URL encoding is applied; the backend interprets the free text
// per its own grammar.
func (s *PortalSearcher) buildSearchURL(query string) string {
	q := url.Values{}
	q.Set("q", strings.TrimSpace("site:"+s.domain+" "+query))
	return s.endpoint + "?" + q.Encode()
}

// parseResults extracts postings from a web-search result page.
func parseResults(html string, maxResults int) ([]types.Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results HTML: %w", err)
	}

	var hits []types.Posting
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}

		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())

		posting := types.Posting{
			URL:     resolveRedirect(href),
			Snippet: snippet,
		}
		posting.Title, posting.Company, posting.Location = splitTitle(title)

		hits = append(hits, posting)
		return len(hits) < maxResults
	})

	return hits, nil
}

// resolveRedirect unwraps the search backend's redirect links (the target URL
// is carried in the uddg query parameter). Unrecognized links pass through.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

// splitTitle splits a result title of the form "Job Title - Company - Location"
// into its parts. Portals vary; missing parts stay empty.
func splitTitle(raw string) (title, company, location string) {
	parts := strings.Split(raw, " - ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) >= 3:
		return parts[0], parts[1], strings.Join(parts[2:], ", ")
	case len(parts) == 2:
		return parts[0], parts[1], ""
	default:
		return raw, "", ""
	}
}
