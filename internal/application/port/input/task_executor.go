package input

import "context"

type ExecuteResult struct {
	FinalAnswer string
	Iterations  int
	ToolCalls   int
}

// TaskExecutor runs one natural-language task against an agent's tools
// until the controller reports a final answer.
type TaskExecutor interface {
	Execute(ctx context.Context, task string) (*ExecuteResult, error)
}
