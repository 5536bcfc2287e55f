// Package sendmail implements a mailview transport that pipes the
// assembled message into a local sendmail binary.
package sendmail

import (
	"context"
	"fmt"

	"github.com/forgekit/mailview"
	"github.com/forgekit/mailview/internal/mimeconv"
)

// DefaultPath is the sendmail binary used when none is configured.
const DefaultPath = "/usr/sbin/sendmail"

func init() {
	mailview.Register("sendmail", func(_ context.Context, args map[string]any) (mailview.Sender, error) {
		var cfg Config
		if err := mailview.DecodeArgs(args, &cfg); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// Config holds sendmail transport configuration.
type Config struct {
	// Path to the sendmail binary. Defaults to DefaultPath.
	Path string `yaml:"path"`

	// Args are extra arguments passed to the binary.
	Args []string `yaml:"args"`
}

// Sender implements mailview.Sender through a sendmail pipe.
type Sender struct {
	path string
	args []string
}

// New creates a sendmail sender.
func New(cfg Config) *Sender {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	return &Sender{path: path, args: cfg.Args}
}

// Send implements mailview.Sender.
func (s *Sender) Send(ctx context.Context, msg *mailview.Message) error {
	m, err := mimeconv.BuildMsg(msg)
	if err != nil {
		return fmt.Errorf("sendmail: %w", err)
	}
	if err := m.WriteToSendmailWithContext(ctx, s.path, s.args...); err != nil {
		return fmt.Errorf("sendmail: failed to send email: %w", err)
	}
	return nil
}
