package mailview

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Option configures a View or TemplateView.
type Option func(*settings)

// settings collects option state before it lands on a view.
type settings struct {
	logger     *slog.Logger
	newID      func() string
	dateHeader bool
	renderers  map[string]Renderer
	sanitizer  *bluemonday.Policy
}

func newSettings(opts []Option) settings {
	s := settings{renderers: make(map[string]Renderer)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the logger used for per-send debug lines.
// If unset, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithMessageID makes the view append a generated Message-ID header
// when the request does not carry one.
func WithMessageID() Option {
	return WithMessageIDFunc(func() string {
		return "<" + uuid.NewString() + "@mailview>"
	})
}

// WithMessageIDFunc is WithMessageID with a custom generator.
func WithMessageIDFunc(gen func() string) Option {
	return func(s *settings) {
		s.newID = gen
	}
}

// WithDateHeader makes the view append a Date header when the request
// does not carry one.
func WithDateHeader() Option {
	return func(s *settings) {
		s.dateHeader = true
	}
}

// WithRenderer registers a rendering view under name.
// Only the template view uses renderers.
func WithRenderer(name string, r Renderer) Option {
	return func(s *settings) {
		s.renderers[name] = r
	}
}

// WithSanitizer applies a bluemonday policy to rendered text/html
// parts before they are attached to the message.
// Only the template view sanitizes.
func WithSanitizer(p *bluemonday.Policy) Option {
	return func(s *settings) {
		s.sanitizer = p
	}
}
