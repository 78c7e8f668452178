// Package commands turns key presses into editor actions. A keymap binds
// keys to named commands per mode; keys without a binding fall back to a
// mode-specific default such as inserting the typed character.
package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/logging"
	"github.com/dshills/quill/internal/modes"
	"github.com/dshills/quill/internal/preferences"
	"github.com/dshills/quill/internal/workspace"
)

// Handler dispatches keys to commands. It implements app.InputHandler.
type Handler struct {
	keymap   Keymap
	registry *Registry
	logger   *logrus.Entry
}

var _ app.InputHandler = (*Handler)(nil)

// NewHandler loads the keymap for prefs: the built-in bindings overridden
// by the user's keymap file.
func NewHandler(prefs preferences.Preferences, logger logrus.FieldLogger) (*Handler, error) {
	path, err := prefs.KeymapPath()
	if err != nil {
		path = ""
	}
	km, err := LoadKeymap(path)
	if err != nil {
		return nil, err
	}
	return NewHandlerWithKeymap(km, logger), nil
}

// NewHandlerWithKeymap returns a handler using km as is.
func NewHandlerWithKeymap(km Keymap, logger logrus.FieldLogger) *Handler {
	return &Handler{
		keymap:   km,
		registry: NewRegistry(),
		logger:   logging.Component(logger, "commands"),
	}
}

// Registry returns the handler's commands.
func (h *Handler) Registry() *Registry {
	return h.registry
}

// HandleInput runs the commands bound to k in the active mode, stopping at
// the first error. Unbound keys get the mode's default behavior.
func (h *Handler) HandleInput(a *app.Application, k key.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.WithField("panic", r).Error("command panicked")
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	mode, ok := a.ModeName()
	if !ok {
		return nil
	}
	if names, ok := h.keymap.Lookup(mode, k); ok {
		for _, name := range names {
			if err := h.registry.Run(a, name); err != nil {
				return err
			}
		}
		return nil
	}
	return h.fallback(a, k)
}

// fallback handles keys the keymap does not bind.
func (h *Handler) fallback(a *app.Application, k key.Event) error {
	switch m := a.Mode.(type) {
	case *modes.Insert:
		if !k.IsChar() {
			return nil
		}
		b, err := currentBuffer(a)
		if err != nil {
			return err
		}
		b.Insert(k.Text())
	case *modes.Command, *modes.Open, *modes.SymbolJump, *modes.Theme:
		s := m.(modes.SearchSelector)
		if s.InsertMode() && k.IsChar() {
			for _, r := range k.Text() {
				s.PushSearchChar(r)
			}
			s.Search()
		}
	case *modes.Search:
		if m.InsertMode() && k.IsChar() {
			for _, r := range k.Text() {
				m.PushChar(r)
			}
		}
	case *modes.LineJump:
		if k.IsChar() {
			m.PushChar(k.Rune)
		}
	case *modes.Path:
		if k.IsChar() {
			for _, r := range k.Text() {
				m.PushChar(r)
			}
		}
	case *modes.Jump:
		return jumpTo(a, m, k)
	case *modes.Confirm:
		a.SwitchMode(modes.NewNormal())
	}
	return nil
}

func currentBuffer(a *app.Application) (*workspace.Buffer, error) {
	b := a.Workspace.CurrentBuffer()
	if b == nil {
		return nil, ErrNoBuffer
	}
	return b, nil
}

func switchToNormal(a *app.Application) error {
	a.SwitchMode(modes.NewNormal())
	return nil
}
