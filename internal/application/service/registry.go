package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"browser-toolkit/internal/application/port/output"
	"browser-toolkit/internal/domain/entity"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var _ output.ToolRegistry = (*ToolRegistryImpl)(nil)

type registeredTool struct {
	tool   output.ToolPort
	schema *jsonschema.Schema
}

type ToolRegistryImpl struct {
	mu     sync.RWMutex
	tools  map[entity.ToolName]registeredTool
	logger output.LoggerPort
}

func NewToolRegistry(logger output.LoggerPort) *ToolRegistryImpl {
	return &ToolRegistryImpl{
		tools:  make(map[entity.ToolName]registeredTool),
		logger: logger,
	}
}

// Register compiles the tool's parameter schema and adds it to the registry.
// Names are unique: a second tool with the same name is rejected.
func (r *ToolRegistryImpl) Register(tool output.ToolPort) error {
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}

	schema, err := compileSchema(name, tool.Parameters())
	if err != nil {
		return fmt.Errorf("tool %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", entity.ErrDuplicateTool, name)
	}
	r.tools[name] = registeredTool{tool: tool, schema: schema}

	if r.logger != nil {
		r.logger.Debug("Tool registered", "name", name)
	}
	return nil
}

func (r *ToolRegistryImpl) Get(name entity.ToolName) (output.ToolPort, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt, ok := r.tools[name]
	return rt.tool, ok
}

// All returns the registered tools ordered by name.
func (r *ToolRegistryImpl) All() []output.ToolPort {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]output.ToolPort, 0, len(r.tools))
	for _, rt := range r.tools {
		result = append(result, rt.tool)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

func (r *ToolRegistryImpl) Definitions() []entity.ToolDefinition {
	tools := r.All()
	result := make([]entity.ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}

func (r *ToolRegistryImpl) Invoke(ctx context.Context, name entity.ToolName, arguments string) (*entity.ToolResult, error) {
	r.mu.RLock()
	rt, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownTool, name)
	}

	arguments = strings.TrimSpace(arguments)
	if arguments == "" {
		arguments = "{}"
	}

	if err := validateArguments(rt.schema, arguments); err != nil {
		if r.logger != nil {
			r.logger.Warn("Tool arguments rejected", "name", name, "args", arguments, "error", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrSchemaValidation, name, err)
	}

	return rt.tool.Execute(ctx, arguments)
}

func compileSchema(name entity.ToolName, params map[string]interface{}) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	url := "mem://tools/" + string(name) + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func validateArguments(schema *jsonschema.Schema, arguments string) error {
	dec := json.NewDecoder(strings.NewReader(arguments))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("arguments are not valid JSON: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("arguments contain trailing data")
	}
	return schema.Validate(doc)
}
