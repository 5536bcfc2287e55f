package mailview

import (
	"context"
	"log/slog"
	"net/http"
)

// MailView is the surface middleware needs from a view. Both View and
// TemplateView satisfy it.
type MailView interface {
	Send(ctx context.Context) error
	StashKey() string
}

// responseWriter tracks whether the handler started the response, so
// the middleware knows if a failure status can still be written.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Middleware attaches an empty email request to the stash before the
// handler runs and forwards to the view afterwards if the handler
// populated it. Send failures are logged; the response becomes a 500
// only when the handler has not started writing it yet.
//
// Handlers reach the request with FromStash:
//
//	req := mailview.FromStash(r.Context(), view.StashKey())
//	req.To = []string{"user@example.com"}
//	req.Subject = "Hello"
//	req.Body = "Hi there"
func Middleware(view MailView, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, req := NewStash(r.Context(), view.StashKey())
			rw := &responseWriter{ResponseWriter: w}
			next.ServeHTTP(rw, r.WithContext(ctx))

			if !req.populated() {
				return
			}
			if err := view.Send(ctx); err != nil {
				log.ErrorContext(ctx, "failed to send email", "error", err)
				if !rw.wroteHeader {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}
		})
	}
}
