// Package key describes keyboard input as the editor sees it.
//
// An Event is a key plus modifiers; printable characters use KeyRune and carry
// the character in Event.Rune. Events have a canonical text form, used as the
// lookup key in keymaps:
//
//	a        plain character
//	A        shifted character (Shift is folded into the rune)
//	ctrl-s   Control + s
//	alt-f    Alt + f
//	enter    special key
//	shift-tab
//
// Parse accepts the same notation, so Parse(e.String()) round-trips.
package key
