package prompts

import (
	"bytes"
	"text/template"

	"browser-toolkit/internal/application/port/output"
)

type ToolInfo struct {
	Name        string
	Description string
}

type InstructionsData struct {
	Tools []ToolInfo
}

// GenerateInstructions renders an agent prompt template with the tools the
// registry exposes, in name order.
func GenerateInstructions(baseTemplate string, registry output.ToolRegistry) (string, error) {
	tools := registry.All()
	infos := make([]ToolInfo, 0, len(tools))
	for _, t := range tools {
		infos = append(infos, ToolInfo{
			Name:        t.Name().String(),
			Description: t.Description(),
		})
	}

	tmpl, err := template.New("instructions").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, InstructionsData{Tools: infos}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
