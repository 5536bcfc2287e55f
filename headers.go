package mailview

import (
	"mime"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// buildHeaders assembles the ordered header list from the request in
// fixed precedence order: To, Cc, Bcc, From, Subject, Content-Type.
// The subject passes through RFC 2047 Q-encoding with the resolved
// charset. Raw request headers follow the fixed block unchanged.
func buildHeaders(req *Request, contentType, charset string) []HeaderField {
	var hdr []HeaderField

	appendAddr := func(name string, addrs []string) {
		if len(addrs) > 0 {
			hdr = append(hdr, HeaderField{Name: name, Value: strings.Join(addrs, ", ")})
		}
	}

	appendAddr("To", req.To)
	appendAddr("Cc", req.Cc)
	appendAddr("Bcc", req.Bcc)
	if req.From != "" {
		hdr = append(hdr, HeaderField{Name: "From", Value: req.From})
	}
	if req.Subject != "" {
		hdr = append(hdr, HeaderField{Name: "Subject", Value: encodeSubject(req.Subject)})
	}
	hdr = append(hdr, HeaderField{
		Name:  "Content-Type",
		Value: mime.FormatMediaType(contentType, map[string]string{"charset": charset}),
	})
	if req.ReplyTo != "" {
		hdr = append(hdr, HeaderField{Name: "Reply-To", Value: req.ReplyTo})
	}

	return append(hdr, req.Header...)
}

// encodeSubject Q-encodes a subject for the wire. ASCII-only subjects
// come back unchanged; mime.QEncoding only wraps when it has to.
// Encoded words are always labeled UTF-8, since Go strings hold UTF-8
// bytes no matter which body charset the view is configured with.
func encodeSubject(subject string) string {
	return mime.QEncoding.Encode("UTF-8", subject)
}

// validateCharset checks the charset name against the IANA registry.
func validateCharset(name string) error {
	if name == "" {
		return nil
	}
	if _, err := ianaindex.MIME.Encoding(name); err != nil {
		return ErrInvalidCharset
	}
	return nil
}
