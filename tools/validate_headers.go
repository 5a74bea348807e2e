package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/reconcile"
)

// ValidateHeadersTool checks a spreadsheet header row for the required identity columns
type ValidateHeadersTool struct{}

// NewValidateHeadersTool creates a new header validation tool
func NewValidateHeadersTool() *ValidateHeadersTool {
	return &ValidateHeadersTool{}
}

func (t *ValidateHeadersTool) Name() string {
	return "validate_headers"
}

func (t *ValidateHeadersTool) Description() string {
	return `Validate a spreadsheet header row before import.
Input should include the list of header cells as read from the first row.
Returns whether the sheet can be imported and which identity column is missing if not.`
}

func (t *ValidateHeadersTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"headers": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Header cells from the first row of the sheet",
			},
		},
		"required": []string{"headers"},
	}
}

// ValidateHeadersInput represents the input for header validation
type ValidateHeadersInput struct {
	Headers []string `json:"headers"`
}

func (t *ValidateHeadersTool) Execute(_ context.Context, input json.RawMessage) (json.RawMessage, error) {
	var validateInput ValidateHeadersInput
	if err := json.Unmarshal(input, &validateInput); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	valid, missing := reconcile.ValidateStructure(validateInput.Headers)

	return NewSuccessResult(models.ValidateStructureResponse{
		Valid:               valid,
		MissingIdentityKind: missing,
	})
}
