package mailview

import "errors"

var (
	// ErrNoStash indicates no email request was found under the configured stash key.
	ErrNoStash = errors.New("no email request in stash")

	// ErrNoRecipient indicates the request has no To, Cc, or Bcc address.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoContent indicates the request carries neither a body nor parts.
	ErrNoContent = errors.New("email must have a body or parts")

	// ErrNoTemplate indicates a template view request without templates.
	ErrNoTemplate = errors.New("request must name a template or templates")

	// ErrUnknownTransport indicates the configured transport name is not registered.
	ErrUnknownTransport = errors.New("unknown mail transport")

	// ErrUnknownRenderer indicates a rendering view name that is not registered.
	ErrUnknownRenderer = errors.New("unknown rendering view")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates the transport reported a delivery failure.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidCharset indicates a charset name the IANA registry does not know.
	ErrInvalidCharset = errors.New("invalid charset")
)
