// Package templview renders mail templates from registered templ
// components. Each named template maps to a constructor that builds a
// templ.Component from the request data.
package templview

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// ComponentFunc builds a templ component from request data.
type ComponentFunc func(data any) templ.Component

// Renderer resolves template names to registered component
// constructors and renders them to HTML strings.
type Renderer struct {
	components map[string]ComponentFunc
	mu         sync.RWMutex
}

// New creates an empty renderer.
func New() *Renderer {
	return &Renderer{components: make(map[string]ComponentFunc)}
}

// Add registers a component constructor under name. Re-registering a
// name replaces the previous constructor.
func (r *Renderer) Add(name string, fn ComponentFunc) *Renderer {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[name] = fn
	return r
}

// Render executes the named component with data.
func (r *Renderer) Render(ctx context.Context, name string, data any) (string, error) {
	r.mu.RLock()
	fn, ok := r.components[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("component %s: not registered", name)
	}

	var sb strings.Builder
	if err := fn(data).Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("render component %s: %w", name, err)
	}
	return sb.String(), nil
}
