package smtp

// Config holds SMTP transport configuration. It is decoded from the
// view's transport_args mapping.
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Auth selects the SMTP auth mechanism: "plain", "login",
	// "cram-md5", or empty for none.
	Auth string `yaml:"auth"`

	// TLS selects the STARTTLS policy: "mandatory" (default),
	// "opportunistic", or "none".
	TLS string `yaml:"tls"`
}
