// Package ses implements a mailview transport that delivers through
// the AWS SES v2 API.
package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/forgekit/mailview"
)

func init() {
	mailview.Register("ses", func(ctx context.Context, args map[string]any) (mailview.Sender, error) {
		var cfg Config
		if err := mailview.DecodeArgs(args, &cfg); err != nil {
			return nil, err
		}
		return New(ctx, cfg)
	})
}

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
// Used for testing with mock implementations.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender implements mailview.Sender using the SES v2 API.
type Sender struct {
	client SendEmailAPI
}

// New creates a SES sender with the given configuration.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: failed to load AWS config: %w", err)
	}

	return &Sender{client: sesv2.NewFromConfig(awsCfg)}, nil
}

// NewWithClient creates a Sender with a custom client, used for testing.
func NewWithClient(client SendEmailAPI) *Sender {
	return &Sender{client: client}
}

// Send implements mailview.Sender. Plain-body messages without extra
// headers use the SES simple format; everything else is sent as a raw
// MIME message.
func (s *Sender) Send(ctx context.Context, msg *mailview.Message) error {
	var input *sesv2.SendEmailInput
	if simple(msg) {
		input = buildSimpleInput(msg)
	} else {
		raw, err := buildRawMessage(msg)
		if err != nil {
			return fmt.Errorf("ses: failed to build raw message: %w", err)
		}
		input = &sesv2.SendEmailInput{
			FromEmailAddress: aws.String(msg.From()),
			Destination: &types.Destination{
				ToAddresses:  msg.To(),
				CcAddresses:  msg.Cc(),
				BccAddresses: msg.Bcc(),
			},
			Content: &types.EmailContent{
				Raw: &types.RawMessage{Data: raw},
			},
		}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses: failed to send email: %w", err)
	}
	return nil
}

// simple reports whether the message fits the SES simple format.
func simple(msg *mailview.Message) bool {
	return len(msg.Parts) == 0 && len(msg.Attachments) == 0 && len(msg.ExtraHeaders()) == 0
}

// buildSimpleInput creates a SendEmailInput for plain-body messages.
func buildSimpleInput(msg *mailview.Message) *sesv2.SendEmailInput {
	contentType, params := msg.ContentType()
	charset := params["charset"]
	if charset == "" {
		charset = "UTF-8"
	}

	body := &types.Body{}
	content := &types.Content{
		Data:    aws.String(msg.Body),
		Charset: aws.String(charset),
	}
	if contentType == "text/html" {
		body.Html = content
	} else {
		body.Text = content
	}

	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From()),
		Destination: &types.Destination{
			ToAddresses:  msg.To(),
			CcAddresses:  msg.Cc(),
			BccAddresses: msg.Bcc(),
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject()),
					Charset: aws.String(charset),
				},
				Body: body,
			},
		},
	}
}

// buildRawMessage renders the ordered header list and parts into a raw
// MIME message. Bcc stays out of the content headers; SES takes it
// from the Destination.
func buildRawMessage(msg *mailview.Message) ([]byte, error) {
	var buf bytes.Buffer
	multi := len(msg.Parts) > 0 || len(msg.Attachments) > 0

	for _, h := range msg.Headers {
		if strings.EqualFold(h.Name, "Bcc") {
			continue
		}
		// The multipart container below replaces the original
		// Content-Type header.
		if multi && strings.EqualFold(h.Name, "Content-Type") {
			continue
		}
		fmt.Fprintf(&buf, "%s: %s\r\n", h.Name, h.Value)
	}
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")

	if !multi {
		fmt.Fprintf(&buf, "\r\n%s", msg.Body)
		return buf.Bytes(), nil
	}

	writer := multipart.NewWriter(&buf)
	container := "multipart/alternative"
	if len(msg.Attachments) > 0 {
		container = "multipart/mixed"
	}
	fmt.Fprintf(&buf, "Content-Type: %s; boundary=%q\r\n\r\n", container, writer.Boundary())

	parts := msg.Parts
	if len(parts) == 0 && msg.Body != "" {
		contentType, params := msg.ContentType()
		parts = []mailview.Part{{ContentType: contentType, Charset: params["charset"], Body: msg.Body}}
	}
	for _, p := range parts {
		hdr := make(textproto.MIMEHeader)
		charset := p.Charset
		if charset == "" {
			charset = "UTF-8"
		}
		hdr.Set("Content-Type", mime.FormatMediaType(p.ContentType, map[string]string{"charset": charset}))
		w, err := writer.CreatePart(hdr)
		if err != nil {
			return nil, fmt.Errorf("failed to create body part: %w", err)
		}
		w.Write([]byte(p.Body))
	}

	for _, att := range msg.Attachments {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Type", att.ContentType)
		hdr.Set("Content-Transfer-Encoding", "base64")
		hdr.Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s", mime.QEncoding.Encode("UTF-8", att.Filename)))
		if att.ContentID != "" {
			hdr.Set("Content-ID", att.ContentID)
		}

		w, err := writer.CreatePart(hdr)
		if err != nil {
			return nil, fmt.Errorf("failed to create attachment part: %w", err)
		}
		w.Write([]byte(encodeBase64WithLineBreaks(att.Content)))
	}

	writer.Close()
	return buf.Bytes(), nil
}

// encodeBase64WithLineBreaks encodes bytes to base64 with 76-character
// line breaks per RFC 2045.
func encodeBase64WithLineBreaks(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	var lines []string
	for i := 0; i < len(encoded); i += 76 {
		end := min(i+76, len(encoded))
		lines = append(lines, encoded[i:end])
	}
	return strings.Join(lines, "\r\n")
}
