package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ output.ToolPort = (*OpenWebsiteTool)(nil)

type OpenWebsiteTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewOpenWebsiteTool(browser output.BrowserPort, logger output.LoggerPort) *OpenWebsiteTool {
	return &OpenWebsiteTool{browser: browser, logger: logger}
}

func (t *OpenWebsiteTool) Name() entity.ToolName { return entity.ToolOpenWebsite }

func (t *OpenWebsiteTool) Description() string {
	return "Opens the given url in the browser. Starts the browser on first use."
}

func (t *OpenWebsiteTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"minLength":   1,
				"description": "Absolute URL including the scheme, e.g. https://example.com/login",
			},
		},
		"required":             []string{"url"},
		"additionalProperties": false,
	}
}

func (t *OpenWebsiteTool) Execute(ctx context.Context, arguments string) (*entity.ToolResult, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSchemaValidation, err)
	}

	t.logger.Info("Opening website", "tool", t.Name(), "url", input.URL)

	if err := t.browser.Navigate(ctx, input.URL); err != nil {
		return nil, err
	}

	current, err := t.browser.CurrentURL(ctx)
	if err != nil {
		current = input.URL
	}
	return entity.TextResult(fmt.Sprintf("Opened %s", current)), nil
}
