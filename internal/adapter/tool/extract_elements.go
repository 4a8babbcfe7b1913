package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ output.ToolPort = (*ExtractElementsTool)(nil)

var defaultElementTags = []string{"input", "button"}

// elementTags maps the accepted element types to the tag they query.
var elementTags = map[string]string{
	"input":  "input",
	"button": "button",
	"a":      "a",
	"link":   "a",
	"label":  "label",
}

type ExtractElementsTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewExtractElementsTool(browser output.BrowserPort, logger output.LoggerPort) *ExtractElementsTool {
	return &ExtractElementsTool{browser: browser, logger: logger}
}

func (t *ExtractElementsTool) Name() entity.ToolName { return entity.ToolExtractElements }

func (t *ExtractElementsTool) Description() string {
	return "Extracts elements from the current page by type. Returns selector, type, text, placeholder and name of each match in document order. Defaults to inputs and buttons."
}

func (t *ExtractElementsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"elementTypes": map[string]interface{}{
				"type": []string{"array", "null"},
				"items": map[string]interface{}{
					"type": "string",
					"enum": []string{"input", "button", "a", "link", "label"},
				},
				"description": `Element types to extract. "a" and "link" both mean anchors. null or empty means input and button.`,
			},
		},
		"additionalProperties": false,
	}
}

func (t *ExtractElementsTool) Execute(ctx context.Context, arguments string) (*entity.ToolResult, error) {
	var input struct {
		ElementTypes []string `json:"elementTypes"`
	}
	if err := json.Unmarshal([]byte(arguments), &input); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSchemaValidation, err)
	}

	tags, err := resolveElementTags(input.ElementTypes)
	if err != nil {
		return nil, err
	}

	t.logger.Info("Extracting elements", "tool", t.Name(), "tags", tags)

	elements, err := t.browser.ExtractElements(ctx, tags)
	if err != nil {
		return nil, err
	}
	if elements == nil {
		elements = []entity.ElementDescriptor{}
	}

	data, err := json.Marshal(elements)
	if err != nil {
		return nil, fmt.Errorf("marshal elements: %w", err)
	}

	t.logger.Debug("Elements extracted", "tool", t.Name(), "count", len(elements))
	return entity.TextResult(string(data)), nil
}

// resolveElementTags maps element types to tag names, dropping duplicates
// and keeping the caller's order.
func resolveElementTags(types []string) ([]string, error) {
	if len(types) == 0 {
		return append([]string(nil), defaultElementTags...), nil
	}

	seen := make(map[string]bool, len(types))
	tags := make([]string, 0, len(types))
	for _, typ := range types {
		tag, ok := elementTags[typ]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported element type %q", entity.ErrSchemaValidation, typ)
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags, nil
}
