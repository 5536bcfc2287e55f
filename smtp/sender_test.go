package smtp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "minimal",
			cfg:  Config{Host: "mail.example.com"},
		},
		{
			name: "full",
			cfg: Config{
				Host:     "mail.example.com",
				Port:     587,
				Username: "user",
				Password: "pass",
				Auth:     "plain",
				TLS:      "opportunistic",
			},
		},
		{
			name: "no tls",
			cfg:  Config{Host: "localhost", Port: 1025, TLS: "none"},
		},
		{
			name:    "missing host",
			cfg:     Config{Port: 587},
			wantErr: true,
		},
		{
			name:    "unknown tls policy",
			cfg:     Config{Host: "mail.example.com", TLS: "maybe"},
			wantErr: true,
		},
		{
			name:    "unknown auth",
			cfg:     Config{Host: "mail.example.com", Auth: "oauth-dance"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := New(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
		})
	}
}
