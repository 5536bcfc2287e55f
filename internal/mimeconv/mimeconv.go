// Package mimeconv converts assembled mailview messages into go-mail
// messages. MIME encoding itself stays with go-mail.
package mimeconv

import (
	"bytes"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/forgekit/mailview"
)

// BuildMsg maps a mailview message onto a go-mail Msg. The first part
// becomes the body; further parts become alternatives.
func BuildMsg(msg *mailview.Message) (*mail.Msg, error) {
	var opts []mail.MsgOption
	if _, params := msg.ContentType(); params["charset"] != "" {
		opts = append(opts, mail.WithCharset(mail.Charset(params["charset"])))
	}
	m := mail.NewMsg(opts...)

	if from := msg.From(); from != "" {
		if err := m.From(from); err != nil {
			return nil, fmt.Errorf("invalid From address: %w", err)
		}
	}
	if to := msg.To(); len(to) > 0 {
		if err := m.To(to...); err != nil {
			return nil, fmt.Errorf("invalid To address: %w", err)
		}
	}
	if cc := msg.Cc(); len(cc) > 0 {
		if err := m.Cc(cc...); err != nil {
			return nil, fmt.Errorf("invalid Cc address: %w", err)
		}
	}
	if bcc := msg.Bcc(); len(bcc) > 0 {
		if err := m.Bcc(bcc...); err != nil {
			return nil, fmt.Errorf("invalid Bcc address: %w", err)
		}
	}
	if replyTo := msg.HeaderValues("Reply-To"); len(replyTo) > 0 {
		if err := m.ReplyTo(replyTo[0]); err != nil {
			return nil, fmt.Errorf("invalid Reply-To address: %w", err)
		}
	}

	if subject := msg.Subject(); subject != "" {
		m.Subject(subject)
	}
	for _, h := range msg.ExtraHeaders() {
		m.SetHeader(mail.Header(h.Name), h.Value)
	}

	if len(msg.Parts) > 0 {
		for i, p := range msg.Parts {
			ct := mail.ContentType(p.ContentType)
			if i == 0 {
				m.SetBodyString(ct, p.Body)
				continue
			}
			m.AddAlternativeString(ct, p.Body)
		}
	} else {
		ct, _ := msg.ContentType()
		if ct == "" {
			ct = string(mail.TypeTextPlain)
		}
		m.SetBodyString(mail.ContentType(ct), msg.Body)
	}

	for _, a := range msg.Attachments {
		var fopts []mail.FileOption
		if a.ContentType != "" {
			fopts = append(fopts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		if a.ContentID != "" {
			fopts = append(fopts, mail.WithFileContentID(a.ContentID))
		}
		m.AttachReader(a.Filename, bytes.NewReader(a.Content), fopts...)
	}

	return m, nil
}
