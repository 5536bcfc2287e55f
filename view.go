package mailview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// View assembles an email from the stashed request and configured
// defaults and hands it to the transport adapter.
type View struct {
	sender Sender
	cfg    Config
	log    *slog.Logger

	newID      func() string
	dateHeader bool
	now        func() time.Time
}

// New creates a View with the given transport and configuration.
func New(sender Sender, cfg Config, opts ...Option) (*View, error) {
	if sender == nil {
		return nil, errors.New("mailview: nil sender")
	}
	cfg.applyDefaults()
	if err := validateCharset(cfg.Charset); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCharset, cfg.Charset)
	}

	s := newSettings(opts)
	log := s.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &View{
		sender:     sender,
		cfg:        cfg,
		log:        log,
		newID:      s.newID,
		dateHeader: s.dateHeader,
		now:        time.Now,
	}, nil
}

// NewFromConfig builds the transport named by cfg.Transport from the
// registry and wraps it in a View. An unknown or misconfigured
// transport fails here, before any send attempt.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*View, error) {
	sender, err := NewSender(ctx, cfg.Transport, cfg.TransportArgs)
	if err != nil {
		return nil, err
	}
	return New(sender, cfg, opts...)
}

// StashKey returns the configured stash key.
func (v *View) StashKey() string {
	return v.cfg.StashKey
}

// Send reads the request from the stash and sends it.
// Fails with ErrNoStash when no request is attached to the context.
func (v *View) Send(ctx context.Context) error {
	req := FromStash(ctx, v.cfg.StashKey)
	if req == nil {
		return fmt.Errorf("%w: key %q", ErrNoStash, v.cfg.StashKey)
	}
	return v.SendRequest(ctx, req)
}

// SendRequest assembles and sends an explicit request, bypassing the
// stash. Send failures wrap ErrSendFailed.
func (v *View) SendRequest(ctx context.Context, req *Request) error {
	msg, err := v.build(req)
	if err != nil {
		return err
	}

	v.log.DebugContext(ctx, "sending email",
		"recipients", len(msg.Recipients()),
		"parts", len(msg.Parts),
	)

	if err := v.sender.Send(ctx, msg); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

// build merges configured defaults into the request and assembles the
// message. Validation fails fast at each missing precondition.
func (v *View) build(req *Request) (*Message, error) {
	if len(req.To)+len(req.Cc)+len(req.Bcc) == 0 {
		return nil, ErrNoRecipient
	}
	if req.Body == "" && len(req.Parts) == 0 {
		return nil, ErrNoContent
	}

	merged := *req
	if merged.From == "" {
		merged.From = v.cfg.From
	}
	contentType := merged.ContentType
	if contentType == "" {
		contentType = v.cfg.ContentType
	}
	charset := merged.Charset
	if charset == "" {
		charset = v.cfg.Charset
	} else if err := validateCharset(charset); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCharset, charset)
	}

	msg := &Message{
		Headers:     buildHeaders(&merged, contentType, charset),
		Attachments: slices.Clone(req.Attachments),
	}
	if len(req.Parts) > 0 {
		msg.Parts = slices.Clone(req.Parts)
	} else {
		msg.Body = req.Body
	}

	if v.dateHeader && msg.headerFirst("Date") == "" {
		msg.Headers = append(msg.Headers, HeaderField{Name: "Date", Value: v.now().Format(time.RFC1123Z)})
	}
	if v.newID != nil && msg.headerFirst("Message-ID") == "" {
		msg.Headers = append(msg.Headers, HeaderField{Name: "Message-ID", Value: v.newID()})
	}

	return msg, nil
}
