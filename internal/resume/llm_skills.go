package resume

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jonathan/job-agent/internal/llm"
	"github.com/jonathan/job-agent/internal/prompts"
	"github.com/jonathan/job-agent/internal/schemas"
)

// maxPromptChars bounds how much résumé text is sent to the model.
const maxPromptChars = 12000

// RefineSkills asks the LLM to extract skills from the résumé text and
// validates the reply against the embedded skills schema. On any failure
// (model error, malformed or invalid JSON) it returns the lexicon-based
// fallback unchanged, so a degraded model never loses the upload.
func RefineSkills(ctx context.Context, client llm.Client, text string, fallback []string, logger *zap.Logger) []string {
	if client == nil || text == "" {
		return fallback
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	template, err := prompts.Get("extraction.json", "resume_skills")
	if err != nil {
		logger.Warn("skill extraction prompt unavailable", zap.Error(err))
		return fallback
	}

	prompt := prompts.Format(template, map[string]string{"ResumeText": text})

	reply, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		logger.Warn("skill extraction call failed", zap.Error(err))
		return fallback
	}

	if err := schemas.Validate("skills.schema.json", []byte(reply)); err != nil {
		logger.Warn("skill extraction output rejected", zap.Error(err))
		return fallback
	}

	var parsed struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil || len(parsed.Skills) == 0 {
		return fallback
	}

	return parsed.Skills
}
