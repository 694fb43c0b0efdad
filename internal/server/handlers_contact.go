package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/job-agent/internal/contacts"
	"github.com/jonathan/job-agent/internal/types"
)

// EnrichQuery carries optional lookup hints; the UI can pass either a company
// or URLs. One explicit shape replaces signature probing on the lookup call.
type EnrichQuery struct {
	Company     string `json:"company,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	JobURL      string `json:"job_url,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}

// EnrichRequest represents the request body for /contact/enrich
type EnrichRequest struct {
	Job       types.Posting `json:"job"`
	ProfileID string        `json:"profile_id,omitempty"`
	Query     *EnrichQuery  `json:"query,omitempty"`
}

// handleContactEnrich resolves a recruiter/HR contact for a posting.
// "Not found" is never a structured error: the response is a contact with
// found=false.
func (s *Server) handleContactEnrich(w http.ResponseWriter, r *http.Request) {
	var req EnrichRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q := req.Query
	if q == nil {
		q = &EnrichQuery{}
	}

	company := q.Company
	if company == "" {
		company = req.Job.Company
	}
	jobTitle := q.JobTitle
	if jobTitle == "" {
		jobTitle = req.Job.Title
	}
	jobURL := q.JobURL
	if jobURL == "" {
		jobURL = req.Job.URL
	}

	roleHint := jobTitle
	if roleHint == "" {
		roleHint = "recruiter"
	}

	contact := s.enricher.Lookup(r.Context(), contacts.LookupRequest{
		Company:     company,
		RoleHint:    roleHint,
		JobURL:      jobURL,
		LinkedInURL: q.LinkedInURL,
	})

	s.jsonResponse(w, http.StatusOK, contact)
}
