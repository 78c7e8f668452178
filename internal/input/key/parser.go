package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a keymap key specification such as "a", "ctrl-s",
// "shift-tab" or "enter".
//
// The last dash-separated part is the key; the others are modifiers. A lone
// "-" names the minus character, and "ctrl--" is Control plus minus.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var mods Modifier
	rest := spec
	for {
		i := strings.IndexByte(rest, '-')
		if i <= 0 || i == len(rest)-1 {
			break
		}
		mod, ok := modifierFromName(rest[:i])
		if !ok {
			break
		}
		mods = mods.With(mod)
		rest = rest[i+1:]
	}

	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		return NewEvent(KeyRune, r, mods), nil
	}

	k := FromName(rest)
	if k == KeyNone {
		return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, rest, spec)
	}
	return NewEvent(k, 0, mods), nil
}

// MustParse is like Parse but panics on error. Intended for tables and tests.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}
