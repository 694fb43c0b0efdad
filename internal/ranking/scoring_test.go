package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-agent/internal/types"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "simple words", in: "Backend Engineer", want: []string{"backend", "engineer"}},
		{name: "punctuation split", in: "Go, Kubernetes/Docker!", want: []string{"go", "kubernetes", "docker"}},
		{name: "digits kept", in: "EC2 S3", want: []string{"ec2", "s3"}},
		{name: "empty", in: "", want: nil},
		{name: "only punctuation", in: "--- ///", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileSignal_CollectsAllGroups(t *testing.T) {
	p := &types.Profile{
		Roles:     []string{"Backend Engineer"},
		Skills:    []string{"Python", "Go"},
		Locations: []string{"Remote"},
	}

	signal := profileSignal(p)

	for _, tok := range []string{"backend", "engineer", "python", "go", "remote"} {
		_, ok := signal[tok]
		assert.True(t, ok, "expected token %q in signal", tok)
	}
	assert.Len(t, signal, 5)
}

func TestOverlapFraction(t *testing.T) {
	signal := map[string]struct{}{
		"backend": {}, "engineer": {}, "python": {}, "remote": {},
	}

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "half match", text: "Backend Engineer wanted", want: 0.5},
		{name: "full match", text: "remote python backend engineer", want: 1.0},
		{name: "no match", text: "pastry chef", want: 0.0},
		{name: "empty text", text: "", want: 0.0},
		{name: "case insensitive", text: "PYTHON", want: 0.25},
		{name: "duplicate tokens count once", text: "python python python", want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, overlapFraction(signal, tt.text), 1e-9)
		})
	}
}

func TestOverlapFraction_EmptySignal(t *testing.T) {
	assert.Equal(t, 0.0, overlapFraction(nil, "anything"))
	assert.Equal(t, 0.0, overlapFraction(map[string]struct{}{}, "anything"))
}

func TestScore_TitleOutweighsSnippet(t *testing.T) {
	signal := map[string]struct{}{"python": {}}

	titleHit := &types.Posting{Title: "Python Developer"}
	snippetHit := &types.Posting{Title: "Developer", Snippet: "Python shop"}

	assert.Greater(t, score(signal, nil, titleHit), score(signal, nil, snippetHit))
}

func TestScore_ResumeBonusOnlyWithResume(t *testing.T) {
	signal := map[string]struct{}{"python": {}}
	resume := map[string]struct{}{"python": {}, "django": {}}

	posting := &types.Posting{Title: "Python Developer"}

	withResume := score(signal, resume, posting)
	withoutResume := score(signal, nil, posting)

	assert.Greater(t, withResume, withoutResume)
}

func TestResumeTokens_EmptyWithoutText(t *testing.T) {
	assert.Nil(t, resumeTokens(&types.Profile{}))

	tokens := resumeTokens(&types.Profile{ResumeText: "Go and Python"})
	assert.Len(t, tokens, 3)
}
