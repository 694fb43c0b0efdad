// Package contacts looks up recruiter/HR contacts through a RocketReach-style
// people-search API and normalizes the result.
//
// Enrichment is strictly best-effort: any transport, authentication or plan
// failure degrades to a not-found contact rather than propagating. Nothing in
// the search/ranking path depends on enrichment succeeding.
package contacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-agent/internal/types"
)

// DefaultBaseURL is the production people-search API base.
const DefaultBaseURL = "https://api.rocketreach.co/v2/api"

const requestTimeout = 20 * time.Second

// Client calls the people-search API. A client with an empty API key is
// valid and reports every lookup as not found without making network calls.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a people-search client. baseURL may be empty to use the
// production API.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

// LookupRequest carries the hints available for a contact lookup. All fields
// are optional; a request with neither Company nor LinkedInURL resolves to
// not-found without any external call.
type LookupRequest struct {
	Company     string
	RoleHint    string
	JobURL      string
	LinkedInURL string
}

// Lookup resolves a recruiter/HR contact. A LinkedIn profile URL is tried
// first (direct profile lookup); otherwise it falls back to a company+role
// people search. The returned contact has Found=false when nothing resolved.
func (c *Client) Lookup(ctx context.Context, req LookupRequest) types.Contact {
	notFound := types.Contact{Found: false, Company: req.Company}

	if c.apiKey == "" {
		return notFound
	}
	if req.LinkedInURL == "" && req.Company == "" {
		return notFound
	}

	if req.LinkedInURL != "" {
		if contact, ok := c.lookupProfile(ctx, req.LinkedInURL, req.Company); ok {
			return contact
		}
	}

	if req.Company != "" {
		if contact, ok := c.searchPeople(ctx, req); ok {
			return contact
		}
	}

	return notFound
}

// person is the subset of people-search response fields we normalize from.
// Field names vary between endpoints and plans, so several aliases are kept.
type person struct {
	Name             string `json:"name"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	CurrentWorkEmail string `json:"current_work_email"`
	LinkedInURL      string `json:"linkedin_url"`
	ProfileURL       string `json:"profile_url"`
	CurrentEmployer  string `json:"current_employer"`
	Company          string `json:"company"`
	CurrentTitle     string `json:"current_title"`
	Title            string `json:"title"`
}

// hasIdentity reports whether the record names an actual person.
func (p *person) hasIdentity() bool {
	return p.Name != "" || p.FullName != ""
}

// normalize maps the raw person record onto a Contact, falling back to the
// caller's company when the record carries none.
func (p *person) normalize(fallbackCompany string) types.Contact {
	contact := types.Contact{Found: true}

	contact.Name = firstNonEmpty(p.Name, p.FullName)
	contact.Email = firstNonEmpty(p.Email, p.CurrentWorkEmail)
	contact.LinkedIn = firstNonEmpty(p.LinkedInURL, p.ProfileURL)
	contact.Company = firstNonEmpty(p.CurrentEmployer, p.Company, fallbackCompany)
	contact.Title = firstNonEmpty(p.CurrentTitle, p.Title)

	return contact
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// lookupProfile performs a direct profile lookup by LinkedIn URL.
func (c *Client) lookupProfile(ctx context.Context, linkedinURL, fallbackCompany string) (types.Contact, bool) {
	payload := map[string]string{"profile_url": linkedinURL}

	body, err := c.post(ctx, "/lookupProfile", payload)
	if err != nil {
		c.logger.Debug("profile lookup failed", zap.Error(err))
		return types.Contact{}, false
	}

	// Some plans return {"profiles":[...]}, others a single object.
	var wrapped struct {
		Profiles []person `json:"profiles"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Profiles) > 0 {
		return wrapped.Profiles[0].normalize(fallbackCompany), true
	}

	var single person
	if err := json.Unmarshal(body, &single); err == nil && single.hasIdentity() {
		return single.normalize(fallbackCompany), true
	}

	return types.Contact{}, false
}

// searchPeople performs a people search by company plus role/title hints.
func (c *Client) searchPeople(ctx context.Context, req LookupRequest) (types.Contact, bool) {
	query := map[string]string{
		"current_employer": req.Company,
	}
	if req.RoleHint != "" {
		query["current_title"] = req.RoleHint
	} else if req.JobURL != "" {
		query["keywords"] = "recruiter OR talent acquisition OR HR"
	}

	payload := map[string]any{
		"query":    query,
		"page":     1,
		"per_page": 1,
	}

	body, err := c.post(ctx, "/search/people", payload)
	if err != nil {
		c.logger.Debug("people search failed", zap.Error(err))
		return types.Contact{}, false
	}

	var resp struct {
		Results []person `json:"results"`
		People  []person `json:"people"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.Contact{}, false
	}

	people := resp.Results
	if len(people) == 0 {
		people = resp.People
	}
	if len(people) == 0 {
		return types.Contact{}, false
	}

	return people[0].normalize(req.Company), true
}

// post sends an authenticated JSON POST and returns the response body.
// Non-200 statuses (404 not found, 401/402 auth or plan issues) are errors.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// Basic auth: username = API key, password empty.
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return buf.Bytes(), nil
}
