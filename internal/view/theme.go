package view

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

	"gopkg.in/yaml.v3"

	"github.com/dshills/quill/internal/view/terminal"
)

// ErrUnknownTheme is returned when selecting a theme that is not loaded.
var ErrUnknownTheme = errors.New("unknown theme")

//go:embed themes/*.yaml
var builtinThemes embed.FS

// themeSpec is the YAML form of a theme.
type themeSpec struct {
	Name       string            `yaml:"name"`
	Foreground string            `yaml:"foreground"`
	Background string            `yaml:"background"`
	Gutter     string            `yaml:"gutter"`
	Focus      string            `yaml:"focus"`
	Warning    string            `yaml:"warning"`
	Status     colorPairSpec     `yaml:"status"`
	Tokens     map[string]string `yaml:"tokens"`
}

type colorPairSpec struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
}

// Theme is a compiled color theme.
type Theme struct {
	Name string

	Default     terminal.Style
	Gutter      terminal.Style
	CurrentLine terminal.Style
	Selection   terminal.Style
	Guide       terminal.Style
	Status      terminal.Style
	Focus       terminal.Style
	Warning     terminal.Style

	tokens map[string]terminal.Style
}

// Token returns the style for a syntax token name.
func (t *Theme) Token(name string) terminal.Style {
	if s, ok := t.tokens[name]; ok {
		return s
	}
	return t.Default
}

// ParseTheme compiles a YAML theme.
func ParseTheme(data []byte) (*Theme, error) {
	var spec themeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("theme has no name")
	}

	var errs []error
	color := func(field, value string) terminal.Color {
		c, err := terminal.ParseColor(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return c
	}

	fg := color("foreground", spec.Foreground)
	bg := color("background", spec.Background)
	def := terminal.Style{Foreground: fg, Background: bg}

	t := &Theme{
		Name:    spec.Name,
		Default: def,
		Gutter:  terminal.Style{Foreground: color("gutter", spec.Gutter), Background: bg},
		Status: terminal.Style{
			Foreground: color("status.foreground", spec.Status.Foreground),
			Background: color("status.background", spec.Status.Background),
		},
		Focus:   terminal.Style{Foreground: color("focus", spec.Focus), Background: bg, Attributes: terminal.AttrBold},
		Warning: terminal.Style{Foreground: color("warning", spec.Warning), Background: bg, Attributes: terminal.AttrBold},
		tokens:  make(map[string]terminal.Style, len(spec.Tokens)),
	}
	if t.Gutter.Foreground.Default {
		t.Gutter.Attributes = terminal.AttrDim
	}
	t.CurrentLine = terminal.Style{Foreground: fg, Background: bg, Attributes: terminal.AttrBold}

	// Selection and the length guide are derived by shading the background
	// towards the foreground. Without concrete colors, fall back to
	// attributes.
	if fg.Default || bg.Default {
		t.Selection = terminal.Style{Foreground: fg, Background: bg, Attributes: terminal.AttrReverse}
		t.Guide = terminal.Style{Foreground: fg, Background: bg, Attributes: terminal.AttrDim}
		if t.Status.Foreground.Default && t.Status.Background.Default {
			t.Status.Attributes = terminal.AttrReverse
		}
	} else {
		t.Selection = terminal.Style{Foreground: fg, Background: bg.Blend(fg, 0.25)}
		t.Guide = terminal.Style{Foreground: fg, Background: bg.Blend(fg, 0.08)}
	}

	for token, value := range spec.Tokens {
		t.tokens[token] = terminal.Style{Foreground: color("tokens."+token, value), Background: bg}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

// ThemeSet holds the available themes by name.
type ThemeSet struct {
	themes map[string]*Theme
}

// LoadThemes returns the built-in themes plus any .yaml themes in dir. A
// user theme replaces a built-in of the same name. Themes that fail to
// parse are skipped and reported in the returned errors; a missing dir is
// not an error.
func LoadThemes(dir string) (*ThemeSet, []error) {
	set := &ThemeSet{themes: make(map[string]*Theme)}

	entries, err := fs.ReadDir(builtinThemes, "themes")
	if err != nil {
		panic(fmt.Sprintf("view: reading built-in themes: %v", err))
	}
	for _, entry := range entries {
		data, err := builtinThemes.ReadFile(path.Join("themes", entry.Name()))
		if err != nil {
			panic(fmt.Sprintf("view: reading built-in theme %s: %v", entry.Name(), err))
		}
		t, err := ParseTheme(data)
		if err != nil {
			panic(fmt.Sprintf("view: built-in theme %s: %v", entry.Name(), err))
		}
		set.themes[t.Name] = t
	}

	if dir == "" {
		return set, nil
	}
	userEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return set, nil
		}
		return set, []error{fmt.Errorf("reading themes: %w", err)}
	}

	var errs []error
	for _, entry := range userEntries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		file := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(file)
		if err == nil {
			var t *Theme
			if t, err = ParseTheme(data); err == nil {
				set.themes[t.Name] = t
				continue
			}
		}
		errs = append(errs, fmt.Errorf("theme %s: %w", file, err))
	}
	return set, errs
}

// Get returns the named theme.
func (s *ThemeSet) Get(name string) (*Theme, bool) {
	t, ok := s.themes[name]
	return t, ok
}

// Names returns the theme names in sorted order.
func (s *ThemeSet) Names() []string {
	names := make([]string, 0, len(s.themes))
	for name := range s.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
