// Package clipboard stores copied text, optionally mirroring it to the
// operating system clipboard.
package clipboard

import (
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

// Kind describes how copied text is pasted back.
type Kind int

const (
	// Empty means nothing has been copied.
	Empty Kind = iota
	// Inline text is pasted at the cursor.
	Inline
	// Block text is whole lines, pasted above or below the cursor line.
	Block
)

func (k Kind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Block:
		return "block"
	default:
		return "empty"
	}
}

// Content is the clipboard's value.
type Content struct {
	Kind Kind
	Text string
}

// System is an operating system clipboard.
type System interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type osClipboard struct{}

func (osClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (osClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Option configures a Clipboard.
type Option func(*Clipboard)

// WithSystem mirrors content to sys. A nil sys disables mirroring.
func WithSystem(sys System) Option {
	return func(c *Clipboard) {
		c.system = sys
	}
}

// Clipboard holds the current content.
type Clipboard struct {
	mu          sync.Mutex
	content     Content
	system      System
	lastWritten string
}

// New creates a clipboard. The OS clipboard is used when the platform
// supports it, unless overridden with WithSystem.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{}
	if !clipboard.Unsupported {
		c.system = osClipboard{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the current content. When the system clipboard holds text
// other than what was last written to it, that text is adopted first:
// as Block if it ends in a newline, otherwise Inline.
func (c *Clipboard) Get() Content {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.system != nil {
		if text, err := c.system.ReadAll(); err == nil && text != "" && text != c.lastWritten {
			kind := Inline
			if strings.HasSuffix(text, "\n") {
				kind = Block
			}
			c.content = Content{Kind: kind, Text: text}
			c.lastWritten = text
		}
	}
	return c.content
}

// Set replaces the content. The local value is always updated; an error
// means only the system mirror failed.
func (c *Clipboard) Set(content Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.content = content
	if c.system == nil || content.Kind == Empty {
		return nil
	}
	if err := c.system.WriteAll(content.Text); err != nil {
		return fmt.Errorf("writing system clipboard: %w", err)
	}
	c.lastWritten = content.Text
	return nil
}
