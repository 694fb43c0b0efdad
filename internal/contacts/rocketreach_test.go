package contacts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_EmptyAPIKeySkipsNetwork(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "", nil)
	contact := client.Lookup(context.Background(), LookupRequest{Company: "Acme", LinkedInURL: "https://linkedin.com/in/x"})

	assert.False(t, contact.Found)
	assert.Equal(t, "Acme", contact.Company)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestLookup_NoHintsSkipsNetwork(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key", nil)
	contact := client.Lookup(context.Background(), LookupRequest{RoleHint: "recruiter", JobURL: "https://example.com/job"})

	assert.False(t, contact.Found)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestLookup_ProfileWrappedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/lookupProfile", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "https://linkedin.com/in/sam", payload["profile_url"])

		_, _ = w.Write([]byte(`{"profiles":[{"full_name":"Sam Recruiter","current_work_email":"sam@acme.com","current_title":"Technical Recruiter"}]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key", nil)
	contact := client.Lookup(context.Background(), LookupRequest{
		Company:     "Acme",
		LinkedInURL: "https://linkedin.com/in/sam",
	})

	assert.True(t, contact.Found)
	assert.Equal(t, "Sam Recruiter", contact.Name)
	assert.Equal(t, "sam@acme.com", contact.Email)
	assert.Equal(t, "Technical Recruiter", contact.Title)
	// Record has no employer field, so the request's company fills in.
	assert.Equal(t, "Acme", contact.Company)
}

func TestLookup_ProfileSingleObjectResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Sam Recruiter","email":"sam@acme.com","linkedin_url":"https://linkedin.com/in/sam","current_employer":"Acme"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key", nil)
	contact := client.Lookup(context.Background(), LookupRequest{LinkedInURL: "https://linkedin.com/in/sam"})

	assert.True(t, contact.Found)
	assert.Equal(t, "Sam Recruiter", contact.Name)
	assert.Equal(t, "https://linkedin.com/in/sam", contact.LinkedIn)
	assert.Equal(t, "Acme", contact.Company)
}

func TestLookup_FailedProfileFallsBackToPeopleSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lookupProfile":
			w.WriteHeader(http.StatusNotFound)
		case "/search/people":
			var payload struct {
				Query   map[string]string `json:"query"`
				Page    int               `json:"page"`
				PerPage int               `json:"per_page"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "Acme", payload.Query["current_employer"])
			assert.Equal(t, "Engineering Manager", payload.Query["current_title"])
			assert.Equal(t, 1, payload.PerPage)

			_, _ = w.Write([]byte(`{"results":[{"name":"Pat Manager","title":"Engineering Manager"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key", nil)
	contact := client.Lookup(context.Background(), LookupRequest{
		Company:     "Acme",
		RoleHint:    "Engineering Manager",
		LinkedInURL: "https://linkedin.com/in/gone",
	})

	assert.True(t, contact.Found)
	assert.Equal(t, "Pat Manager", contact.Name)
	assert.Equal(t, "Engineering Manager", contact.Title)
	assert.Equal(t, "Acme", contact.Company)
}

func TestLookup_PeopleSearchPeopleArrayShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"people":[{"full_name":"Robin HR","current_title":"HR Lead"}]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key", nil)
	contact := client.Lookup(context.Background(), LookupRequest{Company: "Acme", RoleHint: "HR"})

	assert.True(t, contact.Found)
	assert.Equal(t, "Robin HR", contact.Name)
}

func TestLookup_KeywordsUsedWithoutRoleHint(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Query map[string]string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Empty(t, payload.Query["current_title"])
		assert.Contains(t, payload.Query["keywords"], "recruiter")

		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key", nil)
	contact := client.Lookup(context.Background(), LookupRequest{Company: "Acme", JobURL: "https://example.com/job"})

	assert.False(t, contact.Found)
	assert.Equal(t, "Acme", contact.Company)
}

func TestLookup_UpstreamErrorDegradesToNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key", nil)
	contact := client.Lookup(context.Background(), LookupRequest{Company: "Acme", RoleHint: "recruiter"})

	assert.False(t, contact.Found)
	assert.Equal(t, "Acme", contact.Company)
}

func TestPersonNormalize_AliasPrecedence(t *testing.T) {
	p := person{
		Name:             "Primary Name",
		FullName:         "Secondary Name",
		Email:            "primary@acme.com",
		CurrentWorkEmail: "secondary@acme.com",
		CurrentEmployer:  "Acme",
		Company:          "Old Acme",
	}

	contact := p.normalize("Fallback Co")

	assert.Equal(t, "Primary Name", contact.Name)
	assert.Equal(t, "primary@acme.com", contact.Email)
	assert.Equal(t, "Acme", contact.Company)
}
