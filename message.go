package mailview

import (
	"fmt"
	"mime"
	"net/mail"
	"strings"
)

// HeaderField is a single name/value pair in the ordered header list.
// Duplicate names are permitted; order is significant.
type HeaderField struct {
	Name  string
	Value string
}

// Part is one labeled body segment of a multi-part message.
type Part struct {
	ContentType string // MIME type without parameters (e.g., "text/html")
	Charset     string // Charset parameter (e.g., "UTF-8")
	Body        string
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Optional Content-ID for inline attachments
	Content     []byte // Raw file content
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Message is a fully-assembled email ready for a transport adapter.
// It holds the ordered header list and either a plain body or a list
// of MIME parts. Actual MIME encoding is the transport's business.
type Message struct {
	Headers     []HeaderField
	Body        string
	Parts       []Part
	Attachments []Attachment
}

// HeaderValues returns every value set for the given header name,
// in order. Name matching is case-insensitive.
func (m *Message) HeaderValues(name string) []string {
	var vals []string
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			vals = append(vals, h.Value)
		}
	}
	return vals
}

// headerFirst returns the first value for name, or "".
func (m *Message) headerFirst(name string) string {
	for _, h := range m.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Subject returns the decoded Subject header. Encoded words
// (RFC 2047) produced by the header builder are decoded back so
// structured transports can re-encode as they see fit.
func (m *Message) Subject() string {
	raw := m.headerFirst("Subject")
	if raw == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	s, err := dec.DecodeHeader(raw)
	if err != nil {
		return raw
	}
	return s
}

// From returns the From header value, or "".
func (m *Message) From() string {
	return m.headerFirst("From")
}

// To, Cc, and Bcc return the parsed address lists of the respective headers.

func (m *Message) To() []string  { return m.addresses("To") }
func (m *Message) Cc() []string  { return m.addresses("Cc") }
func (m *Message) Bcc() []string { return m.addresses("Bcc") }

// Recipients returns all envelope recipients (To + Cc + Bcc).
func (m *Message) Recipients() []string {
	var all []string
	all = append(all, m.To()...)
	all = append(all, m.Cc()...)
	return append(all, m.Bcc()...)
}

// ExtraHeaders returns every header outside the fixed block
// (To, Cc, Bcc, From, Subject, Content-Type, Reply-To), in order.
// Transports that map the fixed block structurally pass these through
// as raw headers.
func (m *Message) ExtraHeaders() []HeaderField {
	var extra []HeaderField
	for _, h := range m.Headers {
		switch {
		case strings.EqualFold(h.Name, "To"),
			strings.EqualFold(h.Name, "Cc"),
			strings.EqualFold(h.Name, "Bcc"),
			strings.EqualFold(h.Name, "From"),
			strings.EqualFold(h.Name, "Subject"),
			strings.EqualFold(h.Name, "Content-Type"),
			strings.EqualFold(h.Name, "Reply-To"):
		default:
			extra = append(extra, h)
		}
	}
	return extra
}

// ContentType returns the media type and parameters of the
// Content-Type header. Returns "" and nil if absent or unparsable.
func (m *Message) ContentType() (string, map[string]string) {
	raw := m.headerFirst("Content-Type")
	if raw == "" {
		return "", nil
	}
	mediatype, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return "", nil
	}
	return mediatype, params
}

// addresses parses a comma-joined address header into full RFC 5322
// address strings. Falls back to a plain split for values the parser
// rejects.
func (m *Message) addresses(name string) []string {
	var out []string
	for _, raw := range m.HeaderValues(name) {
		addrs, err := mail.ParseAddressList(raw)
		if err != nil {
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			continue
		}
		for _, a := range addrs {
			if a.Name == "" {
				out = append(out, a.Address)
				continue
			}
			out = append(out, a.String())
		}
	}
	return out
}
