// Package gotmpl renders mail templates with Go's template engines.
// Templates ending in .html (or .htm, .xhtml, .gohtml) go through
// html/template for contextual escaping; everything else uses
// text/template.
package gotmpl

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"
)

// Renderer loads and caches Go templates from a filesystem.
type Renderer struct {
	fs fs.FS

	htmlCache map[string]*htmltemplate.Template
	textCache map[string]*texttemplate.Template

	mu sync.RWMutex
}

// New creates a renderer reading templates from filesystem.
func New(filesystem fs.FS) *Renderer {
	return &Renderer{
		fs:        filesystem,
		htmlCache: make(map[string]*htmltemplate.Template),
		textCache: make(map[string]*texttemplate.Template),
	}
}

// Render executes the named template with data.
func (r *Renderer) Render(_ context.Context, name string, data any) (string, error) {
	var buf bytes.Buffer
	if isHTML(name) {
		tmpl, err := r.getHTML(name)
		if err != nil {
			return "", err
		}
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("execute template %s: %w", name, err)
		}
		return buf.String(), nil
	}

	tmpl, err := r.getText(name)
	if err != nil {
		return "", err
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func isHTML(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm", ".xhtml", ".gohtml":
		return true
	}
	return false
}

// getHTML returns a cached html template or parses and caches it.
func (r *Renderer) getHTML(name string) (*htmltemplate.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.htmlCache[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if tmpl, ok := r.htmlCache[name]; ok {
		return tmpl, nil
	}

	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	tmpl, err := htmltemplate.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	r.htmlCache[name] = tmpl
	return tmpl, nil
}

// getText returns a cached text template or parses and caches it.
func (r *Renderer) getText(name string) (*texttemplate.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.textCache[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if tmpl, ok := r.textCache[name]; ok {
		return tmpl, nil
	}

	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	tmpl, err := texttemplate.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	r.textCache[name] = tmpl
	return tmpl, nil
}
