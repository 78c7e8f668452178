package modes

import (
	"unicode"

	"github.com/dshills/quill/internal/workspace"
)

const (
	tagAlphabet = "abcdefghijklmnopqrstuvwxyz"
	// maxTags is the number of two-letter tags.
	maxTags = len(tagAlphabet) * len(tagAlphabet)
	// minWordLength excludes words too short to be worth tagging.
	minWordLength = 2
)

// Tag labels a jump target.
type Tag struct {
	Label    string
	Position workspace.Position
}

// Jump labels visible words with two-letter tags; typing a tag moves the
// cursor to its word.
type Jump struct {
	Input
	tags   []Tag
	byName map[string]workspace.Position
}

// NewJump tags the words of lines, which start at buffer line firstLine.
func NewJump(lines []string, firstLine int) *Jump {
	j := &Jump{byName: make(map[string]workspace.Position)}
	for i, line := range lines {
		for _, offset := range wordStarts(line) {
			if len(j.tags) == maxTags {
				return j
			}
			label := tagLabel(len(j.tags))
			pos := workspace.Position{Line: firstLine + i, Offset: offset}
			j.tags = append(j.tags, Tag{Label: label, Position: pos})
			j.byName[label] = pos
		}
	}
	return j
}

func (*Jump) Kind() Kind { return KindJump }
func (*Jump) mode()      {}

// Tags returns the tags in document order.
func (j *Jump) Tags() []Tag { return j.tags }

// PushChar adds r to the typed tag. Once two characters are typed, done is
// true and ok reports whether they named a tag.
func (j *Jump) PushChar(r rune) (pos workspace.Position, done bool, ok bool) {
	j.Input.PushChar(unicode.ToLower(r))
	if len([]rune(j.text)) < 2 {
		return workspace.Position{}, false, false
	}
	pos, ok = j.byName[j.text]
	return pos, true, ok
}

// tagLabel returns the nth tag: aa, ab, ... zz.
func tagLabel(n int) string {
	return string([]byte{tagAlphabet[n/len(tagAlphabet)], tagAlphabet[n%len(tagAlphabet)]})
}

// wordStarts returns the rune offsets of words in line.
func wordStarts(line string) []int {
	var starts []int
	start, length := -1, 0
	offset := 0
	flush := func() {
		if start >= 0 && length >= minWordLength {
			starts = append(starts, start)
		}
		start, length = -1, 0
	}
	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if start < 0 {
				start = offset
			}
			length++
		} else {
			flush()
		}
		offset++
	}
	flush()
	return starts
}
