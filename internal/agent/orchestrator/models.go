package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/llm"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// ChatModel is one model identifier with and without the tool descriptors bound.
type ChatModel struct {
	Name      string
	Base      einomodel.ToolCallingChatModel
	WithTools einomodel.ToolCallingChatModel
}

// ModelPool hands out the current model identifier and moves to the next one
// after a failure. Models are built lazily and cached per identifier.
type ModelPool struct {
	factory llm.Factory
	tools   []*schema.ToolInfo

	mu    sync.Mutex
	names []string
	idx   int
	cache map[string]*ChatModel
}

func NewModelPool(names []string, factory llm.Factory, tools []*schema.ToolInfo) (*ModelPool, error) {
	if len(names) == 0 {
		return nil, errors.New("model pool: at least one model identifier is required")
	}
	if factory == nil {
		return nil, errors.New("model pool: factory is nil")
	}
	return &ModelPool{
		factory: factory,
		tools:   tools,
		names:   append([]string(nil), names...),
		cache:   map[string]*ChatModel{},
	}, nil
}

// Current returns the model for the active identifier.
func (p *ModelPool) Current(ctx context.Context) (*ChatModel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	name := p.names[p.idx]
	if cm, ok := p.cache[name]; ok {
		return cm, nil
	}

	base, err := p.factory(ctx, name)
	if err != nil {
		return nil, err
	}
	withTools, err := base.WithTools(p.tools)
	if err != nil {
		logx.Error().Err(err).Str("model", name).Msg("Failed to bind tools")
		return nil, fmt.Errorf("failed to bind tools to %s: %w", name, err)
	}
	cm := &ChatModel{Name: name, Base: base, WithTools: withTools}
	p.cache[name] = cm
	return cm, nil
}

// Name returns the active identifier.
func (p *ModelPool) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.names[p.idx]
}

// Rotate moves to the next identifier, wrapping around, and returns it.
func (p *ModelPool) Rotate() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idx = (p.idx + 1) % len(p.names)
	return p.names[p.idx]
}
