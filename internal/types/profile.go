// Package types provides type definitions for structured data used throughout the job agent system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// DefaultPortals is the portal set assigned to a profile when the caller does not pick one.
var DefaultPortals = []string{"linkedin", "naukri", "indeed", "hirist", "timesjobs", "talentoindia"}

// Profile represents stored candidate attributes used to build search queries
// and score postings. The ID is assigned at creation and never changes.
type Profile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	YearsExperience float64  `json:"years_experience,omitempty"`
	Locations       []string `json:"locations"`
	Roles           []string `json:"roles"`
	Skills          []string `json:"skills"`
	Portals         []string `json:"portals"`
	ResumeText      string   `json:"resume_text,omitempty"`
}

// ProfileInput represents the request to create or replace a profile.
type ProfileInput struct {
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone           string   `json:"phone,omitempty"`
	YearsExperience float64  `json:"years_experience,omitempty" validate:"gte=0"`
	Locations       []string `json:"locations"`
	Roles           []string `json:"roles"`
	Skills          []string `json:"skills"`
	Portals         []string `json:"portals"`
	ResumeText      string   `json:"resume_text,omitempty"`
}

// Validate validates the ProfileInput using the validator.
func (p *ProfileInput) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// ToProfile converts the input into a Profile, filling the default portal set
// when none was supplied.
func (p *ProfileInput) ToProfile() Profile {
	portals := p.Portals
	if len(portals) == 0 {
		portals = append([]string(nil), DefaultPortals...)
	}
	return Profile{
		Name:            p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		YearsExperience: p.YearsExperience,
		Locations:       p.Locations,
		Roles:           p.Roles,
		Skills:          p.Skills,
		Portals:         portals,
		ResumeText:      p.ResumeText,
	}
}
