package app

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/quill/internal/event"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/preferences"
	"github.com/dshills/quill/internal/view/terminal"
)

// Option configures an Application.
type Option func(*options)

type options struct {
	terminal         terminal.Terminal
	preferences      *preferences.Store
	handler          InputHandler
	logger           logrus.FieldLogger
	queueSize        int
	watchPreferences bool
}

func defaultOptions() options {
	return options{
		handler:          InputHandlerFunc(ignoreInput),
		logger:           logging.Discard(),
		queueSize:        event.DefaultQueueSize,
		watchPreferences: true,
	}
}

func ignoreInput(*Application, key.Event) error { return nil }

// WithTerminal draws to term instead of the system terminal.
func WithTerminal(term terminal.Terminal) Option {
	return func(o *options) {
		o.terminal = term
	}
}

// WithPreferences uses store instead of loading the preferences file. The
// caller keeps ownership of store.
func WithPreferences(store *preferences.Store) Option {
	return func(o *options) {
		o.preferences = store
	}
}

// WithInputHandler sets the handler for key events.
func WithInputHandler(h InputHandler) Option {
	return func(o *options) {
		if h != nil {
			o.handler = h
		}
	}
}

// WithLogger sets the logger components derive from.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithQueueSize sets the event queue buffer size.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithPreferenceWatch enables or disables reloading the preferences file
// when it changes. It has no effect with WithPreferences.
func WithPreferenceWatch(enabled bool) Option {
	return func(o *options) {
		o.watchPreferences = enabled
	}
}
