package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/job-agent/internal/types"
)

// ComposeRequest represents the request body for /compose
type ComposeRequest struct {
	Job       types.Posting  `json:"job"`
	Contact   *types.Contact `json:"contact,omitempty"`
	ProfileID string         `json:"profile_id"`
}

// handleCompose generates an outreach email for a job and optional contact.
func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req ComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.getProfile(r.Context(), req.ProfileID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.composer.Compose(r.Context(), profile, req.Job, req.Contact)
	if err != nil {
		upstream := &ErrUpstreamUnavailable{Upstream: "llm", Cause: err}
		s.errorResponse(w, HTTPStatus(upstream), upstream.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
