package output

import (
	"context"

	"browser-toolkit/internal/domain/entity"
)

type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() map[string]interface{}
	Execute(ctx context.Context, arguments string) (*entity.ToolResult, error)
}

type ToolRegistry interface {
	Register(tool ToolPort) error
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
	// Invoke validates arguments against the tool's schema before executing it.
	Invoke(ctx context.Context, name entity.ToolName, arguments string) (*entity.ToolResult, error)
}
