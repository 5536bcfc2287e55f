package resend

// Config holds Resend transport configuration. It is decoded from the
// view's transport_args mapping.
type Config struct {
	APIKey      string `yaml:"api_key"`
	SenderEmail string `yaml:"sender_email"`
	SenderName  string `yaml:"sender_name"`
}
