package modes

import (
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// SearchSelector is implemented by the modes that filter a list with a typed
// query and let the user pick a result: Command, Open, SymbolJump and Theme.
type SearchSelector interface {
	Mode
	Query() string
	PushSearchChar(r rune)
	PopSearchChar()
	InsertMode() bool
	SetInsertMode(insert bool)
	SelectNext()
	SelectPrevious()
	SelectedIndex() int
	ResultLabels() []string
	Search()
	// Message is shown instead of results when non-empty, e.g. while
	// the Open index is being built.
	Message() string
}

// SearchSelect is the query/results state shared by search-and-select
// modes. It starts in insert mode with an empty query.
type SearchSelect[T any] struct {
	items      []T
	label      func(T) string
	maxResults int

	query    string
	results  []T
	selected int
	insert   bool
}

func newSearchSelect[T any](items []T, label func(T) string, maxResults int) SearchSelect[T] {
	if maxResults <= 0 {
		maxResults = 10
	}
	s := SearchSelect[T]{
		items:      items,
		label:      label,
		maxResults: maxResults,
		insert:     true,
	}
	s.Search()
	return s
}

// Query returns the typed query.
func (s *SearchSelect[T]) Query() string { return s.query }

// PushSearchChar appends r to the query. Call Search to refresh results.
func (s *SearchSelect[T]) PushSearchChar(r rune) {
	s.query += string(r)
}

// PopSearchChar removes the last query character.
func (s *SearchSelect[T]) PopSearchChar() {
	_, size := utf8.DecodeLastRuneInString(s.query)
	s.query = s.query[:len(s.query)-size]
}

// InsertMode reports whether typed keys go to the query rather than
// navigating results.
func (s *SearchSelect[T]) InsertMode() bool { return s.insert }

// SetInsertMode switches between query input and result navigation.
func (s *SearchSelect[T]) SetInsertMode(insert bool) { s.insert = insert }

// SelectNext moves the selection down, wrapping to the top.
func (s *SearchSelect[T]) SelectNext() {
	if len(s.results) > 0 {
		s.selected = (s.selected + 1) % len(s.results)
	}
}

// SelectPrevious moves the selection up, wrapping to the bottom.
func (s *SearchSelect[T]) SelectPrevious() {
	if len(s.results) > 0 {
		s.selected = (s.selected - 1 + len(s.results)) % len(s.results)
	}
}

// SelectedIndex returns the index of the selected result.
func (s *SearchSelect[T]) SelectedIndex() int { return s.selected }

// Results returns the current results.
func (s *SearchSelect[T]) Results() []T { return s.results }

// Selection returns the selected result.
func (s *SearchSelect[T]) Selection() (T, bool) {
	var zero T
	if s.selected < 0 || s.selected >= len(s.results) {
		return zero, false
	}
	return s.results[s.selected], true
}

// ResultLabels returns the display text of each result.
func (s *SearchSelect[T]) ResultLabels() []string {
	labels := make([]string, len(s.results))
	for i, r := range s.results {
		labels[i] = s.label(r)
	}
	return labels
}

// Message is empty for list-backed selectors.
func (s *SearchSelect[T]) Message() string { return "" }

// Search filters the items by the query. An empty query lists the first
// items in their original order.
func (s *SearchSelect[T]) Search() {
	if s.query == "" {
		s.setResults(s.items[:min(len(s.items), s.maxResults)])
		return
	}

	matches := fuzzy.FindFrom(s.query, source[T]{s.items, s.label})
	results := make([]T, 0, min(len(matches), s.maxResults))
	for _, m := range matches {
		if len(results) == s.maxResults {
			break
		}
		results = append(results, s.items[m.Index])
	}
	s.setResults(results)
}

func (s *SearchSelect[T]) setResults(results []T) {
	s.results = results
	s.selected = 0
}

// source adapts items to fuzzy.Source.
type source[T any] struct {
	items []T
	label func(T) string
}

func (s source[T]) String(i int) string { return s.label(s.items[i]) }
func (s source[T]) Len() int            { return len(s.items) }
