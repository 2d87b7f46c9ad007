package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

var (
	ErrDuplicateTool = errors.New("tools: duplicate tool name")
	ErrUnknownTool   = errors.New("tools: unknown tool")
	ErrInvalidInput  = errors.New("tools: invalid input")
)

// Func executes a tool call. input is the decoded JSON arguments object.
type Func func(ctx context.Context, input map[string]any) (any, error)

// Tool is one named callable published to agents.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	ReadOnly    bool
	Execute     Func
}

// Registry holds tools in registration order.
type Registry struct {
	mu        sync.RWMutex
	tools     []Tool
	index     map[string]int
	published bool
	logger    *logging.Logger
}

func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	return &Registry{index: make(map[string]int), logger: logger}
}

// Register adds a tool. Names must be unique and non-empty.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.Execute == nil {
		return fmt.Errorf("%w: tool needs a name and an Execute func", ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(t)
}

func (r *Registry) registerLocked(t Tool) error {
	if _, exists := r.index[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, t.Name)
	}
	if t.InputSchema == nil {
		t.InputSchema = emptyObjectSchema()
	}
	r.index[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
	return nil
}

// Publish registers the fixed tool set once. The first call returns true; every
// later call is a no-op returning false.
func (r *Registry) Publish(set []Tool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.published {
		r.logger.Info("tools: already published, skipping", "count", len(r.tools))
		return false, nil
	}
	for _, t := range set {
		if t.Name == "" || t.Execute == nil {
			return false, fmt.Errorf("%w: tool needs a name and an Execute func", ErrInvalidInput)
		}
		if err := r.registerLocked(t); err != nil {
			return false, err
		}
	}
	r.published = true
	r.logger.Info("tools: published", "count", len(set))
	return true, nil
}

// Published reports whether Publish has succeeded.
func (r *Registry) Published() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.published
}

// Lookup returns the named tool.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// List returns the tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Tool(nil), r.tools...)
}

// Call runs the named tool. A nil input is treated as an empty object.
func (r *Registry) Call(ctx context.Context, name string, input map[string]any) (any, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if input == nil {
		input = map[string]any{}
	}
	return t.Execute(ctx, input)
}

func emptyObjectSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}
