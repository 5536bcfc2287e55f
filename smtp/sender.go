// Package smtp implements a mailview transport that delivers through
// an SMTP server using go-mail.
package smtp

import (
	"context"
	"errors"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/forgekit/mailview"
	"github.com/forgekit/mailview/internal/mimeconv"
)

func init() {
	mailview.Register("smtp", func(_ context.Context, args map[string]any) (mailview.Sender, error) {
		var cfg Config
		if err := mailview.DecodeArgs(args, &cfg); err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// Sender implements mailview.Sender over an SMTP connection.
type Sender struct {
	client *mail.Client
}

// New creates an SMTP sender. The connection is established lazily on
// the first send.
func New(cfg Config) (*Sender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp: host is required")
	}

	opts := []mail.Option{mail.WithTLSPolicy(mail.TLSMandatory)}
	if cfg.Port != 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}

	switch cfg.TLS {
	case "", "mandatory":
	case "opportunistic":
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	case "none":
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	default:
		return nil, fmt.Errorf("smtp: unknown tls policy %q", cfg.TLS)
	}

	switch cfg.Auth {
	case "":
	case "plain":
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain))
	case "login":
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthLogin))
	case "cram-md5":
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthCramMD5))
	default:
		return nil, fmt.Errorf("smtp: unknown auth type %q", cfg.Auth)
	}
	if cfg.Username != "" {
		opts = append(opts, mail.WithUsername(cfg.Username))
	}
	if cfg.Password != "" {
		opts = append(opts, mail.WithPassword(cfg.Password))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: %w", err)
	}
	return &Sender{client: client}, nil
}

// Send implements mailview.Sender.
func (s *Sender) Send(ctx context.Context, msg *mailview.Message) error {
	m, err := mimeconv.BuildMsg(msg)
	if err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: failed to send email: %w", err)
	}
	return nil
}
