package mimeconv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/mailview"
)

func TestBuildMsg_PlainBody(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "From", Value: "noreply@example.com"},
			{Name: "Subject", Value: "Hello"},
			{Name: "Content-Type", Value: "text/plain; charset=UTF-8"},
		},
		Body: "plain text",
	}

	m, err := BuildMsg(msg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "To: <alice@example.com>")
	require.Contains(t, out, "From: <noreply@example.com>")
	require.Contains(t, out, "Subject: Hello")
	require.Contains(t, out, "plain text")
}

func TestBuildMsg_PartsBecomeAlternatives(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "multipart/alternative; charset=UTF-8"},
		},
		Parts: []mailview.Part{
			{ContentType: "text/plain", Body: "hi"},
			{ContentType: "text/html", Body: "<p>hi</p>"},
		},
	}

	m, err := BuildMsg(msg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "multipart/alternative")
	require.Contains(t, out, "text/plain")
	require.Contains(t, out, "text/html")
}

func TestBuildMsg_ExtraHeadersPassThrough(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "text/plain; charset=UTF-8"},
			{Name: "X-Campaign", Value: "spring"},
		},
		Body: "hi",
	}

	m, err := BuildMsg(msg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "X-Campaign: spring")
}

func TestBuildMsg_AttachmentKeepsTypeAndContentID(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "Content-Type", Value: "text/html; charset=UTF-8"},
		},
		Body: `<img src="cid:logo@app">`,
		Attachments: []mailview.Attachment{
			{
				Filename:    "logo.png",
				ContentType: "image/png",
				ContentID:   "<logo@app>",
				Content:     []byte{0x89, 'P', 'N', 'G'},
			},
		},
	}

	m, err := BuildMsg(msg)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Content-ID: <logo@app>")
	require.Contains(t, out, "image/png")
	require.Contains(t, out, "logo.png")
}

func TestBuildMsg_InvalidFrom(t *testing.T) {
	t.Parallel()

	msg := &mailview.Message{
		Headers: []mailview.HeaderField{
			{Name: "To", Value: "alice@example.com"},
			{Name: "From", Value: "definitely not an address"},
			{Name: "Content-Type", Value: "text/plain"},
		},
		Body: "hi",
	}

	_, err := BuildMsg(msg)
	require.Error(t, err)
}
