package entity

type ToolName string

const (
	ToolOpenWebsite     ToolName = "open_website"
	ToolTakeScreenshot  ToolName = "take_screenshot"
	ToolClickElement    ToolName = "click_element"
	ToolFillForm        ToolName = "fill_form"
	ToolExtractElements ToolName = "extract_elements"
	ToolGetCurrentTime  ToolName = "get_current_time"
	ToolGetMenu         ToolName = "get_menu"
)

func (t ToolName) String() string {
	return string(t)
}

// ToolDefinition is what the controller sees of a tool: its name, what it
// does and the JSON Schema its arguments must satisfy.
type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]interface{}
}

// ToolResult is the observation handed back to the controller. Image is only
// set by tools that capture the page.
type ToolResult struct {
	Content string
	Image   *Screenshot
}

func TextResult(content string) *ToolResult {
	return &ToolResult{Content: content}
}
