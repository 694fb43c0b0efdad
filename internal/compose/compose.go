// Package compose generates outreach emails from profile, job and contact
// data via a templated LLM call.
package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/job-agent/internal/llm"
	"github.com/jonathan/job-agent/internal/prompts"
	"github.com/jonathan/job-agent/internal/types"
)

// FallbackSubject is used when the model reply carries no Subject: line.
const FallbackSubject = "Job application"

// Composer fills the outreach prompt and parses the model's reply.
type Composer struct {
	client llm.Client
}

// NewComposer creates a composer over an LLM client.
func NewComposer(client llm.Client) *Composer {
	return &Composer{client: client}
}

// Compose generates a subject/body pair for the given job and optional
// contact. The output is inherently non-deterministic (it depends on the
// external model).
func (c *Composer) Compose(ctx context.Context, profile *types.Profile, job types.Posting, contact *types.Contact) (types.ComposeResult, error) {
	template, err := prompts.Get("compose.json", "outreach_email")
	if err != nil {
		return types.ComposeResult{}, fmt.Errorf("failed to load compose prompt: %w", err)
	}

	prompt := prompts.Format(template, map[string]string{
		"ContactBlock":    contactBlock(contact),
		"JobTitle":        job.Title,
		"JobCompany":      job.Company,
		"JobLocation":     job.Location,
		"JobURL":          job.URL,
		"JobSnippet":      job.Snippet,
		"Name":            profile.Name,
		"Email":           profile.Email,
		"Phone":           profile.Phone,
		"YearsExperience": strconv.FormatFloat(profile.YearsExperience, 'f', -1, 64),
		"Roles":           strings.Join(profile.Roles, ", "),
		"Skills":          strings.Join(profile.Skills, ", "),
		"Locations":       strings.Join(profile.Locations, ", "),
	})

	reply, err := c.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return types.ComposeResult{}, fmt.Errorf("failed to generate email: %w", err)
	}

	subject, body := ParseReply(reply)
	return types.ComposeResult{Subject: subject, Body: body}, nil
}

// contactBlock renders the recipient line when the contact names someone.
func contactBlock(contact *types.Contact) string {
	if !contact.HasRecipient() {
		return ""
	}
	name := contact.Name
	if name == "" {
		name = "Hiring Team"
	}
	return fmt.Sprintf("Recipient: %s, %s at %s.\n", name, contact.Title, contact.Company)
}

// ParseReply splits a model reply into subject and body. The subject is taken
// from a leading "Subject:" line (case-insensitive); without one the whole
// reply becomes the body under FallbackSubject.
func ParseReply(reply string) (subject, body string) {
	text := strings.TrimSpace(reply)
	subject = FallbackSubject
	body = text

	if !strings.HasPrefix(strings.ToLower(text), "subject:") {
		return subject, body
	}

	lines := strings.SplitN(text, "\n", 2)
	head := strings.TrimSpace(lines[0][len("Subject:"):])
	if head != "" {
		subject = head
	}
	if len(lines) > 1 {
		body = strings.TrimSpace(lines[1])
	} else {
		body = ""
	}
	return subject, body
}
