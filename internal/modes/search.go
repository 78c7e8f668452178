package modes

import (
	"github.com/dshills/quill/internal/workspace"
)

// Search finds text in the current buffer. While Insert is true keys edit
// the query; otherwise they move between matches.
type Search struct {
	Input
	insert   bool
	matches  []workspace.Position
	selected int
}

// NewSearch returns search mode with query prefilled, in insert mode.
func NewSearch(query string) *Search {
	return &Search{Input: Input{text: query}, insert: true}
}

func (*Search) Kind() Kind { return KindSearch }
func (*Search) mode()      {}

// InsertMode reports whether keys edit the query.
func (s *Search) InsertMode() bool { return s.insert }

// SetInsertMode switches between query input and match navigation.
func (s *Search) SetInsertMode(insert bool) { s.insert = insert }

// Matches returns the match positions of the last search.
func (s *Search) Matches() []workspace.Position { return s.matches }

// Run searches b for the query and selects the first match at or after
// the cursor. It returns false when nothing matches.
func (s *Search) Run(b *workspace.Buffer) bool {
	s.matches = b.Search(s.text)
	s.selected = 0
	for i, m := range s.matches {
		if !m.Before(b.Cursor) {
			s.selected = i
			break
		}
	}
	return len(s.matches) > 0
}

// Current returns the selected match.
func (s *Search) Current() (workspace.Position, bool) {
	if len(s.matches) == 0 {
		return workspace.Position{}, false
	}
	return s.matches[s.selected], true
}

// Next selects the following match, wrapping around.
func (s *Search) Next() (workspace.Position, bool) {
	if len(s.matches) == 0 {
		return workspace.Position{}, false
	}
	s.selected = (s.selected + 1) % len(s.matches)
	return s.matches[s.selected], true
}

// Previous selects the preceding match, wrapping around.
func (s *Search) Previous() (workspace.Position, bool) {
	if len(s.matches) == 0 {
		return workspace.Position{}, false
	}
	s.selected = (s.selected - 1 + len(s.matches)) % len(s.matches)
	return s.matches[s.selected], true
}
