package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ output.ToolPort = (*ClickElementTool)(nil)

type ClickElementTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewClickElementTool(browser output.BrowserPort, logger output.LoggerPort) *ClickElementTool {
	return &ClickElementTool{browser: browser, logger: logger}
}

func (t *ClickElementTool) Name() entity.ToolName { return entity.ToolClickElement }

func (t *ClickElementTool) Description() string {
	return "Clicks on the first element matching the given CSS selector."
}

func (t *ClickElementTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"minLength":   1,
				"description": `CSS selector of the element to click, e.g. "button#submit"`,
			},
		},
		"required":             []string{"selector"},
		"additionalProperties": false,
	}
}

func (t *ClickElementTool) Execute(ctx context.Context, arguments string) (*entity.ToolResult, error) {
	var input struct {
		Selector string `json:"selector"`
	}
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSchemaValidation, err)
	}

	t.logger.Info("Clicking element", "tool", t.Name(), "selector", input.Selector)

	if err := t.browser.Click(ctx, input.Selector); err != nil {
		return nil, err
	}
	return entity.TextResult(fmt.Sprintf("Clicked on %s", input.Selector)), nil
}
