package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ output.ToolPort = (*GetMenuTool)(nil)

type GetMenuTool struct {
	menu entity.Menu
}

func NewGetMenuTool() *GetMenuTool {
	return &GetMenuTool{menu: entity.DefaultMenu()}
}

func (t *GetMenuTool) Name() entity.ToolName { return entity.ToolGetMenu }

func (t *GetMenuTool) Description() string {
	return "Fetches and returns the menu items"
}

func (t *GetMenuTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"properties":           map[string]interface{}{},
		"additionalProperties": false,
	}
}

// Execute ignores its arguments. encoding/json sorts map keys, so the
// output is byte-identical on every call.
func (t *GetMenuTool) Execute(ctx context.Context, arguments string) (*entity.ToolResult, error) {
	data, err := json.Marshal(t.menu)
	if err != nil {
		return nil, fmt.Errorf("marshal menu: %w", err)
	}
	return entity.TextResult(string(data)), nil
}
