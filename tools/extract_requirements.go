package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/talentmatch/backend/semantic"
)

// ExtractRequirementsTool extracts structured requirements from a job description
type ExtractRequirementsTool struct {
	semanticService semantic.Service
}

// NewExtractRequirementsTool creates a new requirement extraction tool
func NewExtractRequirementsTool(semanticService semantic.Service) *ExtractRequirementsTool {
	return &ExtractRequirementsTool{
		semanticService: semanticService,
	}
}

func (t *ExtractRequirementsTool) Name() string {
	return "extract_job_requirements"
}

func (t *ExtractRequirementsTool) Description() string {
	return `Extract structured requirements from a free-form job description.
Input should include the job description text.
Returns required skills, experience, education and certifications.`
}

func (t *ExtractRequirementsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"description": map[string]interface{}{
				"type":        "string",
				"description": "Job description text to extract requirements from",
			},
		},
		"required": []string{"description"},
	}
}

// ExtractRequirementsInput represents the input for requirement extraction
type ExtractRequirementsInput struct {
	Description string `json:"description"`
}

func (t *ExtractRequirementsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var extractInput ExtractRequirementsInput
	if err := json.Unmarshal(input, &extractInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if extractInput.Description == "" {
		return NewErrorResult("description is required")
	}

	requirements, err := t.semanticService.ExtractJobRequirements(ctx, extractInput.Description)
	if err != nil {
		log.Printf("[ExtractRequirementsTool] Extraction failed, using keyword fallback: %v", err)
		requirements = semantic.FallbackExtractJobRequirements(extractInput.Description)
	}

	return NewSuccessResult(requirements)
}
