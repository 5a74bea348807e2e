package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/talentmatch/backend/semantic"
)

// ExtractSkillsTool extracts skills from free-form resume text
type ExtractSkillsTool struct {
	semanticService semantic.Service
}

// NewExtractSkillsTool creates a new skill extraction tool
func NewExtractSkillsTool(semanticService semantic.Service) *ExtractSkillsTool {
	return &ExtractSkillsTool{
		semanticService: semanticService,
	}
}

func (t *ExtractSkillsTool) Name() string {
	return "extract_skills"
}

func (t *ExtractSkillsTool) Description() string {
	return `Extract a structured list of skills from free-form resume or profile text.
Input should include the text to analyze.
Returns skills with estimated proficiency level and confidence.`
}

func (t *ExtractSkillsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Resume or profile text to extract skills from",
			},
		},
		"required": []string{"text"},
	}
}

// ExtractSkillsInput represents the input for skill extraction
type ExtractSkillsInput struct {
	Text string `json:"text"`
}

// ExtractSkillsResponse wraps the extracted skills
type ExtractSkillsResponse struct {
	Skills []semantic.ExtractedSkill `json:"skills"`
}

func (t *ExtractSkillsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var extractInput ExtractSkillsInput
	if err := json.Unmarshal(input, &extractInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if extractInput.Text == "" {
		return NewErrorResult("text is required")
	}

	skills, err := t.semanticService.ExtractSkills(ctx, extractInput.Text)
	if err != nil {
		log.Printf("[ExtractSkillsTool] Extraction failed, using keyword fallback: %v", err)
		skills = semantic.FallbackExtractSkills(extractInput.Text)
	}

	return NewSuccessResult(ExtractSkillsResponse{Skills: skills})
}
