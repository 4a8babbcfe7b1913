package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

var _ output.ToolPort = (*TakeScreenshotTool)(nil)

type TakeScreenshotTool struct {
	browser output.BrowserPort
	store   output.ScreenshotStore
	logger  output.LoggerPort
}

func NewTakeScreenshotTool(browser output.BrowserPort, store output.ScreenshotStore, logger output.LoggerPort) *TakeScreenshotTool {
	return &TakeScreenshotTool{browser: browser, store: store, logger: logger}
}

func (t *TakeScreenshotTool) Name() entity.ToolName { return entity.ToolTakeScreenshot }

func (t *TakeScreenshotTool) Description() string {
	return "Takes a screenshot of the current page. The downscaled image is saved to disk and attached for you to look at."
}

func (t *TakeScreenshotTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"properties":           map[string]interface{}{},
		"additionalProperties": false,
	}
}

type screenshotSummary struct {
	Path        string `json:"path"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	EncodedSize int    `json:"encoded_size"`
}

func (t *TakeScreenshotTool) Execute(ctx context.Context, arguments string) (*entity.ToolResult, error) {
	t.logger.Info("Taking screenshot", "tool", t.Name())

	raw, err := t.browser.Screenshot(ctx)
	if err != nil {
		return nil, err
	}

	shot, err := t.store.Save(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrCapture, err)
	}

	data, err := json.Marshal(screenshotSummary{
		Path:        shot.Path,
		Width:       shot.Width,
		Height:      shot.Height,
		EncodedSize: shot.EncodedSize,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal screenshot summary: %w", err)
	}

	return &entity.ToolResult{Content: string(data), Image: shot}, nil
}
