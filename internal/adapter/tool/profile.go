package tool

import (
	"fmt"
	"time"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"
)

// Deps is everything the tool constructors may need. Browser and Screenshots
// may be nil when the profile has no browser tools.
type Deps struct {
	Browser     output.BrowserPort
	Screenshots output.ScreenshotStore
	Logger      output.LoggerPort
	Now         func() time.Time
}

func New(name entity.ToolName, deps Deps) (output.ToolPort, error) {
	switch name {
	case entity.ToolGetCurrentTime:
		return NewGetCurrentTimeTool(deps.Now), nil
	case entity.ToolGetMenu:
		return NewGetMenuTool(), nil
	}

	if deps.Browser == nil {
		return nil, fmt.Errorf("tool %s needs a browser", name)
	}

	switch name {
	case entity.ToolOpenWebsite:
		return NewOpenWebsiteTool(deps.Browser, deps.Logger), nil
	case entity.ToolClickElement:
		return NewClickElementTool(deps.Browser, deps.Logger), nil
	case entity.ToolFillForm:
		return NewFillFormTool(deps.Browser, deps.Logger), nil
	case entity.ToolExtractElements:
		return NewExtractElementsTool(deps.Browser, deps.Logger), nil
	case entity.ToolTakeScreenshot:
		if deps.Screenshots == nil {
			return nil, fmt.Errorf("tool %s needs a screenshot store", name)
		}
		return NewTakeScreenshotTool(deps.Browser, deps.Screenshots, deps.Logger), nil
	}

	return nil, fmt.Errorf("%w: %s", entity.ErrUnknownTool, name)
}

// RegisterProfile registers every tool the profile allows.
func RegisterProfile(registry output.ToolRegistry, profile entity.AgentProfile, deps Deps) error {
	for _, name := range profile.Tools {
		t, err := New(name, deps)
		if err != nil {
			return err
		}
		if err := registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}
