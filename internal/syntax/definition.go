// Package syntax holds language definitions used for highlighting and
// symbol extraction.
//
// A definition is a YAML document of regex rules and keyword lists. Rules
// are tried in order; where matches overlap the earlier match wins, and at
// the same position the earlier rule wins. Keywords are matched as whole
// words after all rules.
package syntax

import (
	"fmt"
	"regexp"
	"sort"
)

// Token names used by the built-in definitions and themes.
const (
	TokenComment  = "comment"
	TokenString   = "string"
	TokenNumber   = "number"
	TokenKeyword  = "keyword"
	TokenType     = "type"
	TokenConstant = "constant"
	TokenFunction = "function"
	TokenHeading  = "heading"
	TokenEmphasis = "emphasis"
	TokenCode     = "code"
	TokenLink     = "link"
	TokenKey      = "key"
)

// Definition describes one language.
type Definition struct {
	Name           string              `yaml:"name"`
	Extensions     []string            `yaml:"extensions"`
	Filenames      []string            `yaml:"filenames"`
	Include        []string            `yaml:"include"`
	Keywords       map[string][]string `yaml:"keywords"`
	Rules          []Rule              `yaml:"rules"`
	SymbolPatterns []string            `yaml:"symbols"`

	rules    []compiledRule
	keywords map[string]string
	symbols  []*regexp.Regexp
	linked   []*Definition
}

// Rule maps a regex to a token name.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Token   string `yaml:"token"`
}

type compiledRule struct {
	re    *regexp.Regexp
	token string
}

// Span is a highlighted region of a line, in byte offsets.
type Span struct {
	Start int
	End   int
	Token string
}

// Symbol is a named location in a buffer.
type Symbol struct {
	Name string
	Line int
}

var wordPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// compile prepares the definition's regexes.
func (d *Definition) compile() error {
	if d.Name == "" {
		return fmt.Errorf("definition has no name")
	}

	d.rules = make([]compiledRule, 0, len(d.Rules))
	for i, r := range d.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		d.rules = append(d.rules, compiledRule{re: re, token: r.Token})
	}

	d.keywords = make(map[string]string)
	for token, words := range d.Keywords {
		for _, w := range words {
			d.keywords[w] = token
		}
	}

	d.symbols = make([]*regexp.Regexp, 0, len(d.SymbolPatterns))
	for i, pattern := range d.SymbolPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("symbol pattern %d: %w", i, err)
		}
		if re.NumSubexp() < 1 {
			return fmt.Errorf("symbol pattern %d: needs a capture group", i)
		}
		d.symbols = append(d.symbols, re)
	}
	return nil
}

// chain returns this definition followed by its linked includes.
func (d *Definition) chain() []*Definition {
	return append([]*Definition{d}, d.linked...)
}

// Tokenize returns the highlighted spans of line, ordered by position and
// never overlapping.
func (d *Definition) Tokenize(line string) []Span {
	if d == nil || line == "" {
		return nil
	}

	type candidate struct {
		span     Span
		priority int
	}
	var candidates []candidate
	priority := 0
	for _, def := range d.chain() {
		for _, r := range def.rules {
			for _, m := range r.re.FindAllStringIndex(line, -1) {
				if m[0] == m[1] {
					continue
				}
				candidates = append(candidates, candidate{Span{m[0], m[1], r.token}, priority})
			}
			priority++
		}
	}
	for _, m := range wordPattern.FindAllStringIndex(line, -1) {
		word := line[m[0]:m[1]]
		for _, def := range d.chain() {
			if token, ok := def.keywords[word]; ok {
				candidates = append(candidates, candidate{Span{m[0], m[1], token}, priority})
				break
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].span.Start != candidates[j].span.Start {
			return candidates[i].span.Start < candidates[j].span.Start
		}
		return candidates[i].priority < candidates[j].priority
	})

	var spans []Span
	end := 0
	for _, c := range candidates {
		if c.span.Start < end {
			continue
		}
		spans = append(spans, c.span)
		end = c.span.End
	}
	return spans
}

// Symbols extracts named symbols from lines.
func (d *Definition) Symbols(lines []string) []Symbol {
	if d == nil {
		return nil
	}

	var symbols []Symbol
	for n, line := range lines {
		for _, def := range d.chain() {
			for _, re := range def.symbols {
				if m := re.FindStringSubmatch(line); m != nil && m[1] != "" {
					symbols = append(symbols, Symbol{Name: m[1], Line: n})
				}
			}
		}
	}
	return symbols
}
