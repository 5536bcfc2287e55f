package capture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/mailview"
)

func TestSender_RecordsMessages(t *testing.T) {
	t.Parallel()

	s := New()
	require.Nil(t, s.Last())
	require.Empty(t, s.Messages())

	first := &mailview.Message{Body: "one"}
	second := &mailview.Message{Body: "two"}
	require.NoError(t, s.Send(context.Background(), first))
	require.NoError(t, s.Send(context.Background(), second))

	require.Len(t, s.Messages(), 2)
	require.Same(t, second, s.Last())

	s.Reset()
	require.Empty(t, s.Messages())
	require.Nil(t, s.Last())
}

func TestSender_Err(t *testing.T) {
	t.Parallel()

	s := New()
	s.Err = errors.New("forced failure")

	err := s.Send(context.Background(), &mailview.Message{Body: "x"})
	require.ErrorIs(t, err, s.Err)
	require.Empty(t, s.Messages())
}

func TestSender_RegisteredTransport(t *testing.T) {
	t.Parallel()

	sender, err := mailview.NewSender(context.Background(), "capture", nil)
	require.NoError(t, err)
	require.IsType(t, &Sender{}, sender)
}
