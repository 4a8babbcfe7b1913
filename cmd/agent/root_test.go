package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestToolsCmd_Website(t *testing.T) {
	out, err := execute(t, "tools")
	require.NoError(t, err)

	var defs []definitionJSON
	require.NoError(t, json.Unmarshal([]byte(out), &defs))

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
		assert.Equal(t, "object", d.Parameters["type"])
		assert.Equal(t, false, d.Parameters["additionalProperties"])
	}
	assert.Equal(t, []string{"click_element", "extract_elements", "fill_form", "open_website", "take_screenshot"}, names)
}

func TestToolsCmd_Cooking(t *testing.T) {
	out, err := execute(t, "tools", "--agent", "cooking")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "get_menu"`)
	assert.Contains(t, out, `"name": "get_current_time"`)
	assert.NotContains(t, out, "open_website")
}

func TestToolsCmd_UnknownAgent(t *testing.T) {
	_, err := execute(t, "tools", "--agent", "pirate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown agent "pirate"`)
}

func TestRunCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := execute(t, "cook", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}
