package userinteraction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.ProgressPort = (*ConsoleProgress)(nil)

// ConsoleProgress prints what the controller is doing, one line per step.
type ConsoleProgress struct {
	out io.Writer
}

func NewConsoleProgress(out io.Writer) *ConsoleProgress {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleProgress{out: out}
}

func (u *ConsoleProgress) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n━━━ Step %d/%d ━━━\n", iteration, maxIterations)
}

func (u *ConsoleProgress) ShowThinking(ctx context.Context, content string) {
	if content == "" {
		return
	}

	blue := color.New(color.FgBlue)
	blue.Fprint(u.out, "\n💭 ")

	dim := color.New(color.Faint)
	dim.Fprintln(u.out, truncate(content, 500))
}

func (u *ConsoleProgress) ShowToolStart(ctx context.Context, toolName, arguments string) {
	icon, name := getToolDisplay(toolName)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "\n%s %s\n", icon, name)

	if summary := formatToolArguments(toolName, arguments); summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(u.out, "   %s\n", summary)
	}
}

func (u *ConsoleProgress) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(u.out, "❌ Error: ")

		dim := color.New(color.Faint)
		dim.Fprintln(u.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(u.out, "✓ %s\n", formatToolResult(toolName, result))
}

func getToolDisplay(toolName string) (string, string) {
	displays := map[entity.ToolName][2]string{
		entity.ToolOpenWebsite:     {"🌐", "Open website"},
		entity.ToolClickElement:    {"🖱️", "Click"},
		entity.ToolFillForm:        {"✏️", "Fill form"},
		entity.ToolTakeScreenshot:  {"📸", "Screenshot"},
		entity.ToolExtractElements: {"🔍", "Extract elements"},
		entity.ToolGetCurrentTime:  {"🕒", "Current time"},
		entity.ToolGetMenu:         {"📋", "Menu"},
	}

	if display, ok := displays[entity.ToolName(toolName)]; ok {
		return display[0], display[1]
	}
	return "🔧", toolName
}

func formatToolArguments(toolName, arguments string) string {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return ""
	}

	switch entity.ToolName(toolName) {
	case entity.ToolOpenWebsite:
		if url, ok := args["url"].(string); ok {
			return fmt.Sprintf("URL: %s", url)
		}

	case entity.ToolClickElement:
		if selector, ok := args["selector"].(string); ok {
			return fmt.Sprintf("Selector: %s", truncate(selector, 60))
		}

	case entity.ToolFillForm:
		if fields, ok := args["fields"].([]interface{}); ok {
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				if m, ok := f.(map[string]interface{}); ok {
					sel, _ := m["selector"].(string)
					val, _ := m["value"].(string)
					parts = append(parts, fmt.Sprintf("%s → %s", truncate(sel, 40), truncate(val, 30)))
				}
			}
			return strings.Join(parts, "; ")
		}

	case entity.ToolExtractElements:
		if types, ok := args["elementTypes"].([]interface{}); ok && len(types) > 0 {
			names := make([]string, 0, len(types))
			for _, t := range types {
				names = append(names, fmt.Sprint(t))
			}
			return fmt.Sprintf("Types: %s", strings.Join(names, ", "))
		}
		return "Types: input, button"
	}

	return ""
}

func formatToolResult(toolName, result string) string {
	switch entity.ToolName(toolName) {
	case entity.ToolExtractElements:
		var elements []json.RawMessage
		if err := json.Unmarshal([]byte(result), &elements); err == nil {
			return fmt.Sprintf("Found %d elements", len(elements))
		}
	case entity.ToolTakeScreenshot:
		var summary struct {
			Path string `json:"path"`
		}
		if err := json.Unmarshal([]byte(result), &summary); err == nil && summary.Path != "" {
			return fmt.Sprintf("Screenshot saved to %s", summary.Path)
		}
	}

	return truncate(result, 100)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
