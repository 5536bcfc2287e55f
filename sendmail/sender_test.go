package sendmail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsPath(t *testing.T) {
	t.Parallel()

	s := New(Config{})
	require.Equal(t, DefaultPath, s.path)

	s = New(Config{Path: "/usr/local/bin/msmtp", Args: []string{"-oi"}})
	require.Equal(t, "/usr/local/bin/msmtp", s.path)
	require.Equal(t, []string{"-oi"}, s.args)
}
