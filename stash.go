package mailview

import "context"

// DefaultStashKey is the stash key used when none is configured.
const DefaultStashKey = "email"

// TemplateRef names one template to render into a MIME part.
type TemplateRef struct {
	Template    string // Template name, resolved against the configured prefix
	Renderer    string // Rendering view name; empty means the view default
	ContentType string // Overrides guessed/configured content type
	Charset     string // Overrides configured charset
}

// Request is the per-request email data bag controllers populate.
// It lives in the request context under the view's stash key and is
// consumed by the view during a single send.
type Request struct {
	To      []string
	Cc      []string
	Bcc     []string
	From    string
	ReplyTo string
	Subject string

	// Body is the plain message body. Ignored when Parts is set, and
	// removed by the template view after rendering.
	Body string

	// Header holds extra raw headers appended after the fixed block,
	// preserving order and permitting duplicates.
	Header []HeaderField

	// Parts are pre-built MIME parts. Either Parts or Body is required
	// by the base view.
	Parts []Part

	Attachments []Attachment

	// ContentType and Charset override the configured defaults.
	ContentType string
	Charset     string

	// Template names a single template for the template view.
	// Templates lists several; it wins over Template when both are set.
	Template  string
	Templates []TemplateRef

	// Data is handed to rendering views as template data.
	Data any
}

// populated reports whether a controller filled in anything worth
// sending. Middleware uses this to decide whether to invoke the view.
func (r *Request) populated() bool {
	return len(r.To)+len(r.Cc)+len(r.Bcc) > 0 ||
		r.Body != "" || len(r.Parts) > 0 ||
		r.Template != "" || len(r.Templates) > 0
}

// stashKey is the context key type for email requests. The name makes
// several views with distinct stash keys coexist in one request.
type stashKey struct{ name string }

// NewStash attaches a fresh Request to the context under key and
// returns both. Controllers mutate the returned Request in place.
func NewStash(ctx context.Context, key string) (context.Context, *Request) {
	if key == "" {
		key = DefaultStashKey
	}
	req := &Request{}
	return context.WithValue(ctx, stashKey{name: key}, req), req
}

// WithStash attaches an existing Request to the context under key.
func WithStash(ctx context.Context, key string, req *Request) context.Context {
	if key == "" {
		key = DefaultStashKey
	}
	return context.WithValue(ctx, stashKey{name: key}, req)
}

// FromStash returns the Request stored under key, or nil.
func FromStash(ctx context.Context, key string) *Request {
	if key == "" {
		key = DefaultStashKey
	}
	req, _ := ctx.Value(stashKey{name: key}).(*Request)
	return req
}
