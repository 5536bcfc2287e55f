package mailview

import (
	"context"
	"path"
	"strings"
)

// Renderer is the rendering-view contract the template view delegates
// to. Implementations wrap the host application's templating engine.
type Renderer interface {
	// Render resolves name and executes it with data, returning the
	// rendered output.
	Render(ctx context.Context, name string, data any) (string, error)
}

// MetaRenderer is an optional Renderer extension for engines whose
// templates carry metadata (e.g., YAML frontmatter). The template view
// uses the metadata "Subject" value as a fallback when the request has
// no subject.
type MetaRenderer interface {
	Renderer

	// RenderMeta renders name and also returns the template metadata.
	RenderMeta(ctx context.Context, name string, data any) (string, map[string]any, error)
}

// guessContentType derives a content type from a template name's
// extension. Returns "" when nothing can be guessed.
func guessContentType(template string) string {
	switch strings.ToLower(path.Ext(template)) {
	case ".html", ".htm", ".xhtml", ".gohtml":
		return "text/html"
	case ".md", ".markdown":
		// Markdown renders to HTML.
		return "text/html"
	case ".txt", ".text":
		return "text/plain"
	default:
		return ""
	}
}
