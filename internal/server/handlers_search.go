package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/job-agent/internal/ranking"
	"github.com/jonathan/job-agent/internal/search"
	"github.com/jonathan/job-agent/internal/types"
)

// SearchRequest represents the request body for /search_jobs
type SearchRequest struct {
	MaxResults int `json:"max_results,omitempty"`
}

// PipelineRequest represents the request body for /pipeline/run
type PipelineRequest struct {
	ProfileID  string   `json:"profile_id"`
	Portals    []string `json:"portals"`
	MaxResults int      `json:"max_results,omitempty"`
}

// SearchResponse represents the response for the search endpoints
type SearchResponse struct {
	Hits []types.Posting `json:"hits"`
}

// handleSearchJobs searches the profile's portal set and returns ranked hits.
// The profile ID is carried as a query parameter.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.getProfile(r.Context(), r.URL.Query().Get("profile_id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	portals := profile.Portals
	if len(portals) == 0 {
		portals = s.registry.Names()
	}

	s.searchAndRank(w, r, profile, portals, req.MaxResults)
}

// handlePipelineRun runs the search/rank pipeline with an explicit portal
// list from the request rather than the stored profile.
func (s *Server) handlePipelineRun(w http.ResponseWriter, r *http.Request) {
	var req PipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.getProfile(r.Context(), req.ProfileID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.searchAndRank(w, r, profile, req.Portals, req.MaxResults)
}

// searchAndRank fans the profile query out over the selected portals, ranks
// the aggregate and writes the top results. Per-portal failures are isolated:
// they are logged and the remaining portals' hits still rank and return.
func (s *Server) searchAndRank(w http.ResponseWriter, r *http.Request, profile *types.Profile, portals []string, maxResults int) {
	if maxResults <= 0 {
		maxResults = s.defaultMaxResults
	}

	query := search.BuildQuery(profile)
	results := search.FanOut(r.Context(), s.registry, portals, query, maxResults)

	for _, pr := range results {
		if pr.Err != nil {
			s.logger.Warn("portal search failed",
				zap.String("portal", pr.Portal),
				zap.Error(pr.Err))
		}
	}

	ranked := ranking.Rank(profile, search.Flatten(results), maxResults)
	if ranked == nil {
		ranked = []types.Posting{}
	}

	s.jsonResponse(w, http.StatusOK, SearchResponse{Hits: ranked})
}
