package mailview

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/microcosm-cc/bluemonday"
)

// TemplateView renders one or more named templates into MIME parts
// and delegates assembly and delivery to the base View.
type TemplateView struct {
	*View

	renderers map[string]Renderer
	sanitizer *bluemonday.Policy
}

// NewTemplate creates a TemplateView. Rendering views are registered
// with WithRenderer; cfg.DefaultRenderer picks the fallback for
// template entries that do not name one.
func NewTemplate(sender Sender, cfg Config, opts ...Option) (*TemplateView, error) {
	base, err := New(sender, cfg, opts...)
	if err != nil {
		return nil, err
	}

	s := newSettings(opts)
	if cfg.DefaultRenderer != "" {
		if _, ok := s.renderers[cfg.DefaultRenderer]; !ok {
			return nil, fmt.Errorf("%w: default %q", ErrUnknownRenderer, cfg.DefaultRenderer)
		}
	}

	return &TemplateView{
		View:      base,
		renderers: s.renderers,
		sanitizer: s.sanitizer,
	}, nil
}

// NewTemplateFromConfig is NewTemplate with the transport resolved
// from the registry by cfg.Transport.
func NewTemplateFromConfig(ctx context.Context, cfg Config, opts ...Option) (*TemplateView, error) {
	sender, err := NewSender(ctx, cfg.Transport, cfg.TransportArgs)
	if err != nil {
		return nil, err
	}
	return NewTemplate(sender, cfg, opts...)
}

// Send reads the request from the stash, renders its templates into
// parts, and sends through the base view.
func (tv *TemplateView) Send(ctx context.Context) error {
	req := FromStash(ctx, tv.cfg.StashKey)
	if req == nil {
		return fmt.Errorf("%w: key %q", ErrNoStash, tv.cfg.StashKey)
	}
	return tv.SendRequest(ctx, req)
}

// SendRequest renders and sends an explicit request.
func (tv *TemplateView) SendRequest(ctx context.Context, req *Request) error {
	refs := req.Templates
	if len(refs) == 0 {
		if req.Template == "" {
			return ErrNoTemplate
		}
		refs = []TemplateRef{{Template: req.Template}}
	}

	rendered := *req
	rendered.Parts = nil
	rendered.Body = "" // rendered parts replace any raw body

	for _, ref := range refs {
		part, meta, err := tv.renderPart(ctx, req, ref)
		if err != nil {
			return err
		}
		rendered.Parts = append(rendered.Parts, part)

		// Frontmatter subject fallback. An explicit request subject
		// wins over template metadata.
		if rendered.Subject == "" && meta != nil {
			if s, ok := meta["Subject"].(string); ok {
				rendered.Subject = s
			}
		}
	}

	return tv.View.SendRequest(ctx, &rendered)
}

// renderPart resolves the rendering view for one template entry,
// renders it, and wraps the output in a MIME part.
func (tv *TemplateView) renderPart(ctx context.Context, req *Request, ref TemplateRef) (Part, map[string]any, error) {
	r, err := tv.resolveRenderer(ref.Renderer)
	if err != nil {
		return Part{}, nil, err
	}

	contentType := ref.ContentType
	if contentType == "" {
		contentType = guessContentType(ref.Template)
	}
	if contentType == "" {
		contentType = tv.cfg.ContentType
	}
	charset := ref.Charset
	if charset == "" {
		charset = tv.cfg.Charset
	}

	name := ref.Template
	if tv.cfg.TemplatePrefix != "" {
		name = path.Join(tv.cfg.TemplatePrefix, name)
	}
	data := tv.renderData(req, contentType)

	var (
		out  string
		meta map[string]any
	)
	if mr, ok := r.(MetaRenderer); ok {
		out, meta, err = mr.RenderMeta(ctx, name, data)
	} else {
		out, err = r.Render(ctx, name, data)
	}
	if err != nil {
		return Part{}, nil, errors.Join(ErrRenderFailed, err)
	}

	if tv.sanitizer != nil && contentType == "text/html" {
		out = tv.sanitizer.Sanitize(out)
	}

	return Part{ContentType: contentType, Charset: charset, Body: out}, meta, nil
}

// resolveRenderer picks a rendering view: explicit entry name, then
// the configured default, then the sole registered renderer.
func (tv *TemplateView) resolveRenderer(name string) (Renderer, error) {
	if name == "" {
		name = tv.cfg.DefaultRenderer
	}
	if name == "" && len(tv.renderers) == 1 {
		for _, r := range tv.renderers {
			return r, nil
		}
	}
	r, ok := tv.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return r, nil
}

// renderData hands the request data to the renderer, with content-type
// and stash-key hints injected when the data is a generic map.
func (tv *TemplateView) renderData(req *Request, contentType string) any {
	m, ok := req.Data.(map[string]any)
	if !ok {
		return req.Data
	}
	data := make(map[string]any, len(m)+2)
	for k, v := range m {
		data[k] = v
	}
	data["ContentType"] = contentType
	data["StashKey"] = tv.cfg.StashKey
	return data
}
