package ses

// Config holds SES transport configuration. It is decoded from the
// view's transport_args mapping. When the static credentials are
// empty, the default AWS credential chain applies.
type Config struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}
