package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentmatch/backend/matching"
)

// ScoreMatchTool scores a single candidate against a job description
type ScoreMatchTool struct {
	ranker *matching.Ranker
}

// NewScoreMatchTool creates a new match scoring tool
func NewScoreMatchTool(ranker *matching.Ranker) *ScoreMatchTool {
	return &ScoreMatchTool{
		ranker: ranker,
	}
}

func (t *ScoreMatchTool) Name() string {
	return "score_match"
}

func (t *ScoreMatchTool) Description() string {
	return `Score a candidate profile against a job description.
Input should include the job ID and the candidate profile ID.
Returns a match result with the overall score, per-dimension breakdown and insights.`
}

func (t *ScoreMatchTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"jobId": map[string]interface{}{
				"type":        "string",
				"description": "ID of the job description",
			},
			"profileId": map[string]interface{}{
				"type":        "string",
				"description": "ID of the candidate profile",
			},
		},
		"required": []string{"jobId", "profileId"},
	}
}

// ScoreMatchInput represents the input for match scoring
type ScoreMatchInput struct {
	JobID     string `json:"jobId"`
	ProfileID string `json:"profileId"`
}

func (t *ScoreMatchTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var scoreInput ScoreMatchInput
	if err := json.Unmarshal(input, &scoreInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	if scoreInput.JobID == "" || scoreInput.ProfileID == "" {
		return NewErrorResult("jobId and profileId are required")
	}

	result, err := t.ranker.ScoreOne(ctx, scoreInput.JobID, scoreInput.ProfileID)
	if err != nil {
		return NewErrorResult(fmt.Sprintf("scoring failed: %v", err))
	}

	return NewSuccessResult(result)
}
