package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-agent/internal/resume"
	"github.com/jonathan/job-agent/internal/types"
)

// maxResumeBytes caps uploaded résumé size.
const maxResumeBytes = 16 << 20 // 16 MiB

// UploadResponse represents the response for /upload_resume
type UploadResponse struct {
	OK              bool     `json:"ok"`
	Tokens          int      `json:"tokens"`
	ExtractedSkills []string `json:"extracted_skills"`
	ProfileID       string   `json:"profile_id"`
}

// handleSetProfile creates a profile from candidate attributes and returns it
// with its assigned ID.
func (s *Server) handleSetProfile(w http.ResponseWriter, r *http.Request) {
	var input types.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := input.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile: "+err.Error())
		return
	}

	profile := input.ToProfile()
	id, err := s.store.CreateProfile(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	profile.ID = id

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUploadResume accepts a PDF résumé, extracts its text and skills, and
// creates a profile seeded from them.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A 'file' upload is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		s.errorResponse(w, http.StatusBadRequest, "Upload a PDF resume")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	text, err := resume.ExtractText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to extract text from PDF: "+err.Error())
		return
	}

	skills := resume.GuessSkills(text)
	skills = resume.RefineSkills(r.Context(), s.llm, text, skills, s.logger)

	profile := types.Profile{
		Skills:     skills,
		Portals:    append([]string(nil), types.DefaultPortals...),
		ResumeText: text,
	}
	id, err := s.store.CreateProfile(r.Context(), profile)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.logger.Info("resume ingested",
		zap.String("profile_id", id),
		zap.Int("skills", len(skills)))

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		OK:              true,
		Tokens:          resume.TokenCount(text),
		ExtractedSkills: skills,
		ProfileID:       id,
	})
}
