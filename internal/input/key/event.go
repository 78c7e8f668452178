package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewEvent creates a key event.
func NewEvent(k Key, r rune, mods Modifier) Event {
	return normalize(Event{Key: k, Rune: r, Modifiers: mods})
}

// Char creates an event for a plain character.
func Char(r rune) Event {
	return normalize(Event{Key: KeyRune, Rune: r})
}

// Ctrl creates an event for Control plus a character.
func Ctrl(r rune) Event {
	return normalize(Event{Key: KeyRune, Rune: r, Modifiers: ModCtrl})
}

// Special creates an event for a special key.
func Special(k Key) Event {
	return Event{Key: k}
}

// normalize folds equivalent spellings into one form: a space rune is
// KeySpace, Shift is dropped from characters (it is already in the rune), and
// control characters are lowered to letters.
func normalize(e Event) Event {
	if e.Key != KeyRune {
		return e
	}
	if e.Rune == ' ' {
		e.Key = KeySpace
		e.Rune = 0
		return e
	}
	e.Modifiers = e.Modifiers.Without(ModShift)
	if e.Modifiers.Has(ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// IsChar returns true if the event is an unmodified printable character,
// i.e. something that should be inserted as text.
func (e Event) IsChar() bool {
	if e.Key == KeySpace {
		return !e.Modifiers.Has(ModCtrl | ModAlt | ModMeta)
	}
	return e.Key == KeyRune &&
		unicode.IsPrint(e.Rune) &&
		!e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Text returns the text an insertable event produces.
func (e Event) Text() string {
	switch {
	case e.Key == KeySpace:
		return " "
	case e.Key == KeyRune:
		return string(e.Rune)
	default:
		return ""
	}
}

// String returns the canonical keymap form of the event.
func (e Event) String() string {
	var b strings.Builder
	if mods := e.Modifiers.String(); mods != "" {
		b.WriteString(mods)
		b.WriteByte('-')
	}
	if e.Key == KeyRune {
		b.WriteRune(e.Rune)
	} else {
		b.WriteString(e.Key.String())
	}
	return b.String()
}
