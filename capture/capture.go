// Package capture implements an in-memory mailview transport for
// tests and local development. Messages are recorded, not delivered.
package capture

import (
	"context"
	"slices"
	"sync"

	"github.com/forgekit/mailview"
)

func init() {
	mailview.Register("capture", func(_ context.Context, _ map[string]any) (mailview.Sender, error) {
		return New(), nil
	})
}

// Sender records every message it is asked to deliver.
type Sender struct {
	mu   sync.Mutex
	msgs []*mailview.Message

	// Err, when set, is returned by Send instead of recording.
	Err error
}

// New creates an empty capture sender.
func New() *Sender {
	return &Sender{}
}

// Send implements mailview.Sender.
func (s *Sender) Send(_ context.Context, msg *mailview.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

// Messages returns a copy of everything sent so far.
func (s *Sender) Messages() []*mailview.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.msgs)
}

// Last returns the most recently sent message, or nil.
func (s *Sender) Last() *mailview.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.msgs) == 0 {
		return nil
	}
	return s.msgs[len(s.msgs)-1]
}

// Reset clears the recorded messages.
func (s *Sender) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = nil
}
