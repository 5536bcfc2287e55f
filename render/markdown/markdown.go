// Package markdown renders markdown mail templates with optional YAML
// frontmatter and an optional HTML layout.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Renderer converts markdown templates with YAML frontmatter to HTML.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown // cached markdown processor

	// Caches (safe: stores parsed structure, not rendered output)
	templateCache map[string]*cachedTemplate
	layoutCache   map[string]*template.Template
	layoutDir     string
	layout        string

	mu sync.RWMutex
}

// cachedTemplate holds parsed template data for reuse.
type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// Config configures the renderer.
type Config struct {
	// LayoutDir is where layouts live. Default: "layouts".
	LayoutDir string

	// Layout wraps every rendered template in the named HTML layout.
	// Empty means no layout.
	Layout string
}

// New creates a renderer without a layout.
func New(filesystem fs.FS) *Renderer {
	return NewWithConfig(filesystem, Config{})
}

// NewWithConfig creates a renderer with custom config.
func NewWithConfig(filesystem fs.FS, cfg Config) *Renderer {
	if cfg.LayoutDir == "" {
		cfg.LayoutDir = "layouts"
	}
	return &Renderer{
		fs:            filesystem,
		md:            goldmark.New(),
		layoutDir:     cfg.LayoutDir,
		layout:        cfg.Layout,
		templateCache: make(map[string]*cachedTemplate),
		layoutCache:   make(map[string]*template.Template),
	}
}

// Render executes the named markdown template with data and converts
// it to HTML.
func (r *Renderer) Render(ctx context.Context, name string, data any) (string, error) {
	out, _, err := r.RenderMeta(ctx, name, data)
	return out, err
}

// RenderMeta is Render plus the template's frontmatter metadata.
func (r *Renderer) RenderMeta(_ context.Context, name string, data any) (string, map[string]any, error) {
	cached, err := r.getTemplate(name)
	if err != nil {
		return "", nil, err
	}

	var processedMarkdown bytes.Buffer
	if err := cached.tmpl.Execute(&processedMarkdown, data); err != nil {
		return "", nil, fmt.Errorf("execute template %s: %w", name, err)
	}

	var htmlContent bytes.Buffer
	if err := r.md.Convert(processedMarkdown.Bytes(), &htmlContent); err != nil {
		return "", nil, fmt.Errorf("convert markdown %s: %w", name, err)
	}

	if r.layout == "" {
		return htmlContent.String(), cached.metadata, nil
	}

	layoutTmpl, err := r.getLayout(r.layout)
	if err != nil {
		return "", nil, err
	}

	var finalHTML bytes.Buffer
	layoutData := map[string]any{
		"Content":  template.HTML(htmlContent.String()),
		"Metadata": cached.metadata,
	}
	if err := layoutTmpl.Execute(&finalHTML, layoutData); err != nil {
		return "", nil, fmt.Errorf("execute layout %s: %w", r.layout, err)
	}

	return finalHTML.String(), cached.metadata, nil
}

// getTemplate returns a cached template or parses and caches it.
func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	if cached, ok := r.templateCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.templateCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	parsed, err := parseFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	tmpl, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	cached := &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}
	r.templateCache[name] = cached
	return cached, nil
}

// getLayout returns a cached layout template or parses and caches it.
func (r *Renderer) getLayout(name string) (*template.Template, error) {
	r.mu.RLock()
	if cached, ok := r.layoutCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	path := filepath.Join(r.layoutDir, name)
	content, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", name, err)
	}

	layoutTmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", name, err)
	}

	r.layoutCache[name] = layoutTmpl
	return layoutTmpl, nil
}
