package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ output.ToolPort = (*FillFormTool)(nil)

type FillFormTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewFillFormTool(browser output.BrowserPort, logger output.LoggerPort) *FillFormTool {
	return &FillFormTool{browser: browser, logger: logger}
}

func (t *FillFormTool) Name() entity.ToolName { return entity.ToolFillForm }

func (t *FillFormTool) Description() string {
	return "Fills multiple input fields with values, in the given order. Existing content is replaced."
}

func (t *FillFormTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"fields": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"selector": map[string]interface{}{
							"type":        "string",
							"minLength":   1,
							"description": "CSS selector of the input",
						},
						"value": map[string]interface{}{
							"type":        "string",
							"description": "Value to put into the input",
						},
					},
					"required":             []string{"selector", "value"},
					"additionalProperties": false,
				},
				"description": "Fields to fill, applied one after another",
			},
		},
		"required":             []string{"fields"},
		"additionalProperties": false,
	}
}

// Execute stops at the first field that cannot be filled. Fields filled
// before it keep their new values.
func (t *FillFormTool) Execute(ctx context.Context, arguments string) (*entity.ToolResult, error) {
	var input struct {
		Fields []entity.FieldAssignment `json:"fields"`
	}
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSchemaValidation, err)
	}

	t.logger.Info("Filling form", "tool", t.Name(), "fields", len(input.Fields))

	for i, field := range input.Fields {
		t.logger.Debug("Filling field", "index", i, "selector", field.Selector)
		if err := t.browser.Fill(ctx, field.Selector, field.Value); err != nil {
			return nil, fmt.Errorf("field %d of %d: %w", i+1, len(input.Fields), err)
		}
	}

	return entity.TextResult(fmt.Sprintf("Filled %d fields successfully", len(input.Fields))), nil
}
