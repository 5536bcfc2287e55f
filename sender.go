package mailview

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Sender defines the minimal interface that mail transports implement.
// It accepts a fully-assembled Message and handles the actual delivery.
type Sender interface {
	// Send delivers a message. Returns an error if delivery fails.
	Send(ctx context.Context, msg *Message) error
}

// Factory builds a Sender from the raw transport_args mapping of a
// view configuration.
type Factory func(ctx context.Context, args map[string]any) (Sender, error)

var transports = struct {
	sync.RWMutex
	m map[string]Factory
}{m: make(map[string]Factory)}

// Register makes a transport available under the given name.
// Adapter packages call it from init, database/sql driver style, so a
// blank import is enough to enable a transport.
func Register(name string, f Factory) {
	transports.Lock()
	defer transports.Unlock()
	if f == nil {
		panic("mailview: Register with nil factory")
	}
	if _, dup := transports.m[name]; dup {
		panic("mailview: Register called twice for transport " + name)
	}
	transports.m[name] = f
}

// NewSender builds the transport registered under name. Unknown names
// fail with ErrUnknownTransport before any send is attempted.
func NewSender(ctx context.Context, name string, args map[string]any) (Sender, error) {
	transports.RLock()
	f, ok := transports.m[name]
	transports.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, name)
	}
	s, err := f(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("transport %q: %w", name, err)
	}
	return s, nil
}

// DecodeArgs converts the raw transport_args mapping into a typed
// adapter config via a YAML round-trip, so adapter configs reuse their
// yaml struct tags.
func DecodeArgs(args map[string]any, dst any) error {
	data, err := yaml.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode transport args: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode transport args: %w", err)
	}
	return nil
}
