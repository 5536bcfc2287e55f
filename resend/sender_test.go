package resend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/mailview"
)

func TestBuildRequest_PlainBody(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "From", Value: "App <noreply@example.com>"},
			{Name: "Subject", Value: "Hello"},
			{Name: "Content-Type", Value: "text/plain; charset=UTF-8"},
		},
		Body: "plain text",
	}

	req := buildRequest(Config{}, msg)
	require.Equal(t, "App <noreply@example.com>", req.From)
	require.Equal(t, []string{"alice@example.com"}, req.To)
	require.Equal(t, "Hello", req.Subject)
	require.Equal(t, "plain text", req.Text)
	require.Empty(t, req.Html)
}

func TestBuildRequest_HTMLBody(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "text/html; charset=UTF-8"},
		},
		Body: "<p>hi</p>",
	}

	req := buildRequest(Config{}, msg)
	require.Equal(t, "<p>hi</p>", req.Html)
	require.Empty(t, req.Text)
}

func TestBuildRequest_PartsWinOverBody(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "multipart/alternative"},
		},
		Parts: []mailview.Part{
			{ContentType: "text/html", Body: "<p>hi</p>"},
			{ContentType: "text/plain", Body: "hi"},
		},
	}

	req := buildRequest(Config{}, msg)
	require.Equal(t, "<p>hi</p>", req.Html)
	require.Equal(t, "hi", req.Text)
}

func TestBuildRequest_UnsupportedPartsDropped(t *testing.T) {
	t.Parallel()

	// Resend only carries one html and one text variant; other content
	// types and later duplicates fall away.
	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "multipart/alternative"},
		},
		Parts: []mailview.Part{
			{ContentType: "text/html", Body: "first html"},
			{ContentType: "text/html", Body: "second html"},
			{ContentType: "text/calendar", Body: "BEGIN:VCALENDAR"},
		},
	}

	req := buildRequest(Config{}, msg)
	require.Equal(t, "first html", req.Html)
	require.Empty(t, req.Text)
}

func TestBuildRequest_FromFallsBackToConfig(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "text/plain"},
		},
		Body: "hi",
	}

	req := buildRequest(Config{SenderName: "App", SenderEmail: "noreply@example.com"}, msg)
	require.Equal(t, "App <noreply@example.com>", req.From)
}

func TestBuildRequest_ExtraHeadersAndReplyTo(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Reply-To", Value: "replies@example.com"},
			{Name: "Content-Type", Value: "text/plain"},
			{Name: "x-campaign", Value: "spring"},
		},
		Body: "hi",
	}

	req := buildRequest(Config{}, msg)
	require.Equal(t, "replies@example.com", req.ReplyTo)
	require.Equal(t, map[string]string{"X-Campaign": "spring"}, req.Headers)
}

func TestBuildRequest_Attachments(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "text/plain"},
		},
		Body: "see attachment",
		Attachments: []mailview.Attachment{
			{Filename: "report.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
		},
	}

	req := buildRequest(Config{}, msg)
	require.Len(t, req.Attachments, 1)
	require.Equal(t, "report.pdf", req.Attachments[0].Filename)
	require.Equal(t, []byte("%PDF"), req.Attachments[0].Content)
}

func TestTextName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "X-Custom-Header", textName("x-custom-header"))
	require.Equal(t, "X-Custom", textName("X-CUSTOM"))
}
