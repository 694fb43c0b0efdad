package compose

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-agent/internal/llm"
	"github.com/jonathan/job-agent/internal/types"
)

// fakeClient returns a canned reply and records the prompt it received.
type fakeClient struct {
	reply     string
	err       error
	gotPrompt string
	gotTier   llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.gotPrompt = prompt
	f.gotTier = tier
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(context.Background(), prompt, tier)
}

func (f *fakeClient) Close() error { return nil }

func testProfile() *types.Profile {
	return &types.Profile{
		Name:            "Jordan Rivers",
		Email:           "jordan@example.com",
		Phone:           "+49 160 0000000",
		YearsExperience: 6.5,
		Roles:           []string{"Backend Engineer"},
		Skills:          []string{"Go", "PostgreSQL"},
		Locations:       []string{"Berlin"},
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantSubject string
		wantBody    string
	}{
		{
			name:        "subject line parsed",
			reply:       "Subject: Backend Engineer at Acme\nHello,\nI am writing about the role.",
			wantSubject: "Backend Engineer at Acme",
			wantBody:    "Hello,\nI am writing about the role.",
		},
		{
			name:        "case-insensitive prefix",
			reply:       "SUBJECT: Platform role\nBody text.",
			wantSubject: "Platform role",
			wantBody:    "Body text.",
		},
		{
			name:        "no subject line falls back",
			reply:       "Hello,\nI am writing about the role.",
			wantSubject: FallbackSubject,
			wantBody:    "Hello,\nI am writing about the role.",
		},
		{
			name:        "empty subject after prefix falls back",
			reply:       "Subject:\nBody text.",
			wantSubject: FallbackSubject,
			wantBody:    "Body text.",
		},
		{
			name:        "subject only, no body",
			reply:       "Subject: Just a subject",
			wantSubject: "Just a subject",
			wantBody:    "",
		},
		{
			name:        "surrounding whitespace trimmed",
			reply:       "\n  Subject: Trimmed  \n  Body here.  \n",
			wantSubject: "Trimmed",
			wantBody:    "Body here.",
		},
		{
			name:        "empty reply",
			reply:       "",
			wantSubject: FallbackSubject,
			wantBody:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := ParseReply(tt.reply)
			assert.Equal(t, tt.wantSubject, subject)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestCompose_FillsPromptAndParsesReply(t *testing.T) {
	client := &fakeClient{reply: "Subject: Backend Engineer at Acme\nDear Hiring Team,\n..."}
	composer := NewComposer(client)

	job := types.Posting{
		Title:   "Backend Engineer",
		Company: "Acme",
		URL:     "https://example.com/job",
		Snippet: "Build Go services.",
	}

	result, err := composer.Compose(context.Background(), testProfile(), job, nil)
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer at Acme", result.Subject)
	assert.Equal(t, "Dear Hiring Team,\n...", result.Body)
	assert.Equal(t, llm.TierStandard, client.gotTier)

	assert.Contains(t, client.gotPrompt, "Backend Engineer")
	assert.Contains(t, client.gotPrompt, "Acme")
	assert.Contains(t, client.gotPrompt, "Jordan Rivers")
	assert.Contains(t, client.gotPrompt, "6.5")
	assert.Contains(t, client.gotPrompt, "Go, PostgreSQL")
	assert.NotContains(t, client.gotPrompt, "{{.")
}

func TestCompose_ContactRendersRecipientLine(t *testing.T) {
	client := &fakeClient{reply: "Subject: Hi\nBody"}
	composer := NewComposer(client)

	contact := &types.Contact{
		Found:   true,
		Name:    "Sam Recruiter",
		Title:   "Technical Recruiter",
		Company: "Acme",
	}

	_, err := composer.Compose(context.Background(), testProfile(), types.Posting{Title: "Backend Engineer"}, contact)
	require.NoError(t, err)

	assert.Contains(t, client.gotPrompt, "Sam Recruiter")
	assert.Contains(t, client.gotPrompt, "Technical Recruiter")
}

func TestCompose_NilContactOmitsRecipientLine(t *testing.T) {
	client := &fakeClient{reply: "Subject: Hi\nBody"}
	composer := NewComposer(client)

	_, err := composer.Compose(context.Background(), testProfile(), types.Posting{Title: "Backend Engineer"}, nil)
	require.NoError(t, err)

	assert.NotContains(t, client.gotPrompt, "Recipient:")
}

func TestCompose_GenerationErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("model unavailable")}
	composer := NewComposer(client)

	_, err := composer.Compose(context.Background(), testProfile(), types.Posting{Title: "Backend Engineer"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate email")
}

func TestContactBlock(t *testing.T) {
	assert.Empty(t, contactBlock(nil))
	assert.Empty(t, contactBlock(&types.Contact{Found: false, Company: "Acme"}))

	block := contactBlock(&types.Contact{Found: true, Name: "", Title: "Recruiter", Company: "Acme", Email: "r@acme.com"})
	assert.Contains(t, block, "Hiring Team")
	assert.Contains(t, block, "Acme")
}
