// Package terminal abstracts the character-cell display the editor draws to.
//
// Terminal is deliberately narrow: the view layer only needs to size the
// screen, write cells, place the cursor, flush, and read input. Tcell drives a
// real terminal; TestTerminal keeps everything in memory for tests.
package terminal

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"

	"github.com/dshills/quill/internal/input/key"
)

// Terminal is the display/input surface.
type Terminal interface {
	// Init prepares the terminal for drawing. Must be called before any
	// other method.
	Init() error

	// Shutdown restores the terminal and unblocks PollEvent, which then
	// returns EventClosed. Safe to call more than once.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetCell writes one cell. Positions outside the screen are ignored.
	SetCell(x, y int, cell Cell)

	// Clear blanks the back buffer.
	Clear()

	// Show flushes the back buffer to the display.
	Show()

	// ShowCursor places and shows the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorStyle changes the cursor shape.
	SetCursorStyle(style CursorStyle)

	// PollEvent blocks until the next input or resize event.
	PollEvent() Event
}

// CursorStyle defines how the cursor appears.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorUnderline
)

// EventType identifies the kind of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventClosed is returned by PollEvent once the terminal is shut down.
	EventClosed
)

// Event is a terminal input event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int
}

// Attribute is a set of text attributes.
type Attribute uint16

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Has returns true if a contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a 24-bit color or the terminal default.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Default: true}

// RGB creates a true color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses "#rrggbb" (or "#rgb") notation. "default" and the
// empty string yield ColorDefault.
func ParseColor(s string) (Color, error) {
	if s == "" || s == "default" {
		return ColorDefault, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// Blend mixes c towards other by t (0..1) in Lab space. Blending with a
// default color returns c unchanged.
func (c Color) Blend(other Color, t float64) Color {
	if c.Default || other.Default {
		return c
	}
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, bl := a.BlendLab(b, t).Clamped().RGB255()
	return RGB(r, g, bl)
}

// String returns the hex form, or "default".
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// Cell is a single screen cell.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// NewCell creates a cell with the display width of r.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// EmptyCell is a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// RuneWidth returns the number of columns r occupies.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7f {
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// StringWidth returns the number of columns s occupies.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
