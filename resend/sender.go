// Package resend implements a mailview transport that delivers
// through the Resend API.
package resend

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/forgekit/mailview"
)

func init() {
	mailview.Register("resend", func(_ context.Context, args map[string]any) (mailview.Sender, error) {
		var cfg Config
		if err := mailview.DecodeArgs(args, &cfg); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// Sender implements mailview.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mailview.Sender.
func (s *Sender) Send(ctx context.Context, msg *mailview.Message) error {
	req := buildRequest(s.config, msg)
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

// buildRequest maps the assembled message onto Resend's structured
// request. HTML and text come from the part list when present; the
// fallback is the plain body routed by the Content-Type header.
// The Resend API only takes one html and one text variant, so parts
// with any other content type (and duplicate variants beyond the
// first) are dropped.
func buildRequest(cfg Config, msg *mailview.Message) *resend.SendEmailRequest {
	from := msg.From()
	if from == "" {
		from = mailview.Recipient(cfg.SenderName, cfg.SenderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To(),
		Cc:      msg.Cc(),
		Bcc:     msg.Bcc(),
		Subject: msg.Subject(),
	}
	if replyTo := msg.HeaderValues("Reply-To"); len(replyTo) > 0 {
		req.ReplyTo = replyTo[0]
	}

	if len(msg.Parts) > 0 {
		for _, p := range msg.Parts {
			switch p.ContentType {
			case "text/html":
				if req.Html == "" {
					req.Html = p.Body
				}
			case "text/plain":
				if req.Text == "" {
					req.Text = p.Body
				}
			}
		}
	} else if contentType, _ := msg.ContentType(); contentType == "text/html" {
		req.Html = msg.Body
	} else {
		req.Text = msg.Body
	}

	if extra := msg.ExtraHeaders(); len(extra) > 0 {
		req.Headers = make(map[string]string, len(extra))
		for _, h := range extra {
			// Resend takes a flat map; later duplicates win.
			req.Headers[textName(h.Name)] = h.Value
		}
	}

	if len(msg.Attachments) > 0 {
		req.Attachments = convertAttachments(msg.Attachments)
	}

	return req
}

func convertAttachments(attachments []mailview.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

// textName canonicalizes a header name (x-custom -> X-Custom).
func textName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, "-")
}
