package syntax

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// PlainText is the name of the fallback definition.
const PlainText = "Plain Text"

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadError reports a definition file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("syntax definition %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Set is a collection of definitions keyed by name.
type Set struct {
	mu   sync.RWMutex
	defs map[string]*Definition
}

// NewSet returns a set holding the built-in definitions, already linked.
func NewSet() *Set {
	s := &Set{defs: make(map[string]*Definition)}
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("syntax: reading built-ins: %v", err))
	}
	for _, entry := range entries {
		name := path.Join("builtin", entry.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("syntax: reading %s: %v", name, err))
		}
		def, err := parse(data)
		if err != nil {
			panic(fmt.Sprintf("syntax: built-in %s: %v", name, err))
		}
		s.defs[def.Name] = def
	}
	s.Link()
	return s
}

func parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	if err := def.compile(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load adds the definitions found at p, replacing any with the same name.
// p may be a single file or a directory of .yaml/.yml files; recursive
// descends into subdirectories. A missing path is not an error.
func (s *Set) Load(p string, recursive bool) error {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &LoadError{Path: p, Err: err}
	}
	if !info.IsDir() {
		return s.loadFile(p)
	}

	if !recursive {
		entries, err := os.ReadDir(p)
		if err != nil {
			return &LoadError{Path: p, Err: err}
		}
		for _, entry := range entries {
			if entry.IsDir() || !isDefinitionFile(entry.Name()) {
				continue
			}
			if err := s.loadFile(filepath.Join(p, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}

	return filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return &LoadError{Path: file, Err: err}
		}
		if d.IsDir() || !isDefinitionFile(d.Name()) {
			return nil
		}
		return s.loadFile(file)
	})
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func (s *Set) loadFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return &LoadError{Path: file, Err: err}
	}
	def, err := parse(data)
	if err != nil {
		return &LoadError{Path: file, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.defs[def.Name] = def
	return nil
}

// Link resolves include references. Unknown names are ignored and cycles
// are broken, so Link never fails.
func (s *Set) Link() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, def := range s.defs {
		seen := map[string]bool{def.Name: true}
		def.linked = s.resolve(def, seen, nil)
	}
}

func (s *Set) resolve(def *Definition, seen map[string]bool, acc []*Definition) []*Definition {
	for _, name := range def.Include {
		inc, ok := s.defs[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		acc = append(acc, inc)
		acc = s.resolve(inc, seen, acc)
	}
	return acc
}

// Get returns the definition named name, or nil.
func (s *Set) Get(name string) *Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defs[name]
}

// Find returns the definition for a file path: an exact filename match
// first, then an extension match, then plain text.
func (s *Set) Find(p string) *Definition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	base := filepath.Base(p)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))

	for _, name := range s.sortedNames() {
		def := s.defs[name]
		for _, f := range def.Filenames {
			if f == base {
				return def
			}
		}
	}
	if ext != "" {
		for _, name := range s.sortedNames() {
			def := s.defs[name]
			for _, e := range def.Extensions {
				if strings.ToLower(e) == ext {
					return def
				}
			}
		}
	}
	return s.defs[PlainText]
}

// Names returns the definition names in sorted order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedNames()
}

func (s *Set) sortedNames() []string {
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
