package tool

import (
	"context"
	"time"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ output.ToolPort = (*GetCurrentTimeTool)(nil)

type GetCurrentTimeTool struct {
	now func() time.Time
}

// NewGetCurrentTimeTool uses time.Now when now is nil.
func NewGetCurrentTimeTool(now func() time.Time) *GetCurrentTimeTool {
	if now == nil {
		now = time.Now
	}
	return &GetCurrentTimeTool{now: now}
}

func (t *GetCurrentTimeTool) Name() entity.ToolName { return entity.ToolGetCurrentTime }

func (t *GetCurrentTimeTool) Description() string {
	return "This tool returns the current time"
}

func (t *GetCurrentTimeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"properties":           map[string]interface{}{},
		"additionalProperties": false,
	}
}

func (t *GetCurrentTimeTool) Execute(ctx context.Context, arguments string) (*entity.ToolResult, error) {
	return entity.TextResult(t.now().Format(time.RFC3339Nano)), nil
}
