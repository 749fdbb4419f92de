package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Presets holds named filters, typically loaded from the config file.
type Presets struct {
	mu      sync.RWMutex
	filters map[string]*Filter
}

// NewPresets compiles every expression. If any fails, none are registered.
func NewPresets(expressions map[string]string) (*Presets, error) {
	p := &Presets{filters: make(map[string]*Filter, len(expressions))}
	if err := p.RegisterAll(expressions); err != nil {
		return nil, err
	}
	return p, nil
}

// Register compiles and stores a single preset, replacing any previous one.
func (p *Presets) Register(name, expression string) error {
	f, err := Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter preset '%s': %w", name, err)
	}

	p.mu.Lock()
	p.filters[name] = f
	p.mu.Unlock()
	return nil
}

// RegisterAll compiles all expressions first and stores them only if every
// one compiled.
func (p *Presets) RegisterAll(expressions map[string]string) error {
	compiled := make(map[string]*Filter, len(expressions))
	for name, expression := range expressions {
		f, err := Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter preset '%s': %w", name, err)
		}
		compiled[name] = f
	}

	p.mu.Lock()
	maps.Copy(p.filters, compiled)
	p.mu.Unlock()
	return nil
}

// Get returns the preset called name.
func (p *Presets) Get(name string) (*Filter, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	f, ok := p.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return f, nil
}

// Names returns the registered preset names in sorted order.
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.filters))
}
