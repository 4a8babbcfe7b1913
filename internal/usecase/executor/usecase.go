package executor

import (
	"context"
	"fmt"
	"unicode/utf8"

	"browser-toolkit/internal/application/port/input"
	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ input.TaskExecutor = (*UseCase)(nil)

const (
	DefaultMaxIterations = 50
	maxObservationLen    = 20000
)

type Config struct {
	Model         string
	SystemPrompt  string
	MaxIterations int
}

// UseCase forwards the model's tool calls to the registry and feeds the
// observations back until the model answers without calling a tool. Which
// tool to call, and whether to retry after an error, is the model's call.
type UseCase struct {
	llm      output.LLMPort
	tools    output.ToolRegistry
	logger   output.LoggerPort
	progress output.ProgressPort
	cfg      Config
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	progress output.ProgressPort,
	cfg Config,
) *UseCase {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return &UseCase{
		llm:      llm,
		tools:    tools,
		logger:   logger,
		progress: progress,
		cfg:      cfg,
	}
}

func (uc *UseCase) Execute(ctx context.Context, task string) (*input.ExecuteResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.cfg.SystemPrompt},
		{Role: entity.RoleUser, Content: task},
	}

	toolDefs := uc.tools.Definitions()
	toolCalls := 0

	for iteration := 1; iteration <= uc.cfg.MaxIterations; iteration++ {
		uc.logger.Debug("Starting iteration", "iteration", iteration)
		if uc.progress != nil {
			uc.progress.ShowIteration(ctx, iteration, uc.cfg.MaxIterations)
		}

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Model:       uc.cfg.Model,
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.0,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return &input.ExecuteResult{
				FinalAnswer: resp.Message.Content,
				Iterations:  iteration,
				ToolCalls:   toolCalls,
			}, nil
		}

		if uc.progress != nil {
			uc.progress.ShowThinking(ctx, resp.Message.Content)
		}

		var images []string
		for _, tc := range resp.Message.ToolCalls {
			toolCalls++
			observation, image := uc.executeTool(ctx, tc)
			if image != "" {
				images = append(images, image)
			}

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name.String(),
				Content:    observation,
			})

			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("task interrupted: %w", err)
			}
		}

		// Tool messages cannot carry images, so captures go in a user turn.
		if len(images) > 0 {
			messages = append(messages, entity.Message{
				Role:    entity.RoleUser,
				Content: "Screenshot of the current page.",
				Images:  images,
			})
		}
	}

	return nil, fmt.Errorf("max iterations (%d) exceeded", uc.cfg.MaxIterations)
}

func (uc *UseCase) executeTool(ctx context.Context, tc entity.ToolCall) (string, string) {
	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)
	if uc.progress != nil {
		uc.progress.ShowToolStart(ctx, tc.Name.String(), tc.Arguments)
	}

	result, err := uc.tools.Invoke(ctx, tc.Name, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		if uc.progress != nil {
			uc.progress.ShowToolResult(ctx, tc.Name.String(), err.Error(), true)
		}
		return "Error: " + err.Error(), ""
	}

	content := truncateObservation(result.Content, maxObservationLen)

	if uc.progress != nil {
		uc.progress.ShowToolResult(ctx, tc.Name.String(), content, false)
	}
	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result.Content))

	var image string
	if result.Image != nil {
		image = result.Image.DataURL()
	}
	return content, image
}

// truncateObservation cuts s to at most limit bytes without splitting a rune.
func truncateObservation(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}
