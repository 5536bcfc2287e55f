// Package mailview lets HTTP handlers populate a request-scoped email
// stash and forward delivery to a configured view, which merges
// configured defaults, assembles the message, and hands it to a
// pluggable mail transport.
//
// # Architecture
//
// The package consists of four main components:
//
//   - Request: the stash entry controllers fill in (addresses, subject,
//     body or parts, templates)
//   - View: merges request and configured defaults into an ordered
//     header list plus body/parts and delegates to a Sender
//   - TemplateView: renders named templates into MIME parts before
//     handing off to the View
//   - Sender: interface transport adapters implement; adapters register
//     under a name and are selected by configuration
//
// # Usage
//
// Code-only setup with the SMTP transport:
//
//	import (
//		"context"
//
//		"github.com/forgekit/mailview"
//		_ "github.com/forgekit/mailview/smtp"
//	)
//
//	func main() {
//		ctx := context.Background()
//
//		view, err := mailview.NewFromConfig(ctx, mailview.Config{
//			From:      "team@example.com",
//			Transport: "smtp",
//			TransportArgs: map[string]any{
//				"host": "mail.example.com",
//				"port": 587,
//			},
//		})
//		if err != nil {
//			panic(err)
//		}
//
//		ctx, req := mailview.NewStash(ctx, view.StashKey())
//		req.To = []string{"user@example.com"}
//		req.Subject = "Welcome"
//		req.Body = "Hello!"
//
//		if err := view.Send(ctx); err != nil {
//			panic(err)
//		}
//	}
//
// In a web application, Middleware attaches the stash before the
// handler runs and sends after it returns, so controllers only fill in
// the Request.
//
// # Templates
//
// TemplateView resolves each template entry against its registered
// rendering views (render/gotmpl, render/markdown, render/templview, or
// any Renderer implementation), wraps every rendered output in a MIME
// part with a guessed or configured content type and charset, and sends
// the multi-part result through the base view.
//
// # Transports
//
// Adapters live in subpackages (smtp, sendmail, ses, resend, capture)
// and self-register on import. The actual MIME encoding and delivery
// belong to the adapter and its underlying library; this package only
// shapes the data.
//
// # Errors
//
// All failures surface immediately as wrapped sentinel errors
// (ErrNoStash, ErrNoContent, ErrNoTemplate, ErrUnknownTransport,
// ErrUnknownRenderer, ErrRenderFailed, ErrSendFailed); nothing is
// retried locally.
package mailview
