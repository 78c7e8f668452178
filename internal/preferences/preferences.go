// Package preferences loads the user's editor preferences.
//
// Preferences live in <config dir>/preferences.toml. Every field is optional;
// anything left out takes its default. A Preferences value is immutable once
// built: the Store swaps whole snapshots rather than mutating one in place.
package preferences

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotFound is returned by Load when no preferences file exists.
var ErrNotFound = errors.New("preferences file not found")

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "QUILL_CONFIG_DIR"

const (
	fileName   = "preferences.toml"
	syntaxDir  = "syntaxes"
	themeDir   = "themes"
	keymapFile = "keymap.yaml"

	// DefaultTheme is used when no theme is configured.
	DefaultTheme = "quill_dark"
)

// Preferences is a snapshot of the user's settings.
type Preferences struct {
	Theme           string `toml:"theme"`
	TabWidth        int    `toml:"tab_width"`
	SoftTabs        bool   `toml:"soft_tabs"`
	LineLengthGuide int    `toml:"line_length_guide"`
	LineWrapping    bool   `toml:"line_wrapping"`
	Keymap          string `toml:"keymap"`

	OpenMode     OpenMode                   `toml:"open_mode"`
	SearchSelect SearchSelect               `toml:"search_select"`
	Clipboard    Clipboard                  `toml:"clipboard"`
	Types        map[string]TypePreferences `toml:"types"`
}

// OpenMode configures the file finder.
type OpenMode struct {
	// Exclusions are glob patterns matched against root-relative paths.
	Exclusions []string `toml:"exclusions"`
	MaxResults int      `toml:"max_results"`
}

// SearchSelect configures the search-and-select modes.
type SearchSelect struct {
	MaxResults int `toml:"max_results"`
}

// Clipboard configures clipboard integration.
type Clipboard struct {
	// System mirrors copies to the operating system clipboard.
	System bool `toml:"system"`
}

// TypePreferences overrides settings for one file extension.
type TypePreferences struct {
	TabWidth *int  `toml:"tab_width"`
	SoftTabs *bool `toml:"soft_tabs"`
}

// Default returns the built-in preferences. A non-empty themeOverride
// replaces the default theme.
func Default(themeOverride string) Preferences {
	p := Preferences{
		Theme:           DefaultTheme,
		TabWidth:        4,
		SoftTabs:        true,
		LineLengthGuide: 80,
		LineWrapping:    true,
		OpenMode: OpenMode{
			Exclusions: []string{"**/.git", "**/node_modules", "**/target", "**/vendor"},
			MaxResults: 10,
		},
		SearchSelect: SearchSelect{MaxResults: 10},
		Clipboard:    Clipboard{System: true},
	}
	if themeOverride != "" {
		p.Theme = themeOverride
	}
	return p
}

// Load reads preferences from the default location.
func Load() (Preferences, error) {
	path, err := Path()
	if err != nil {
		return Preferences{}, err
	}
	return LoadFrom(path)
}

// LoadOrDefault is Load falling back to Default("") when the file cannot be
// used. A missing file is not an error; any other failure is returned
// alongside the defaults so the caller can report it.
func LoadOrDefault() (Preferences, error) {
	p, err := Load()
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, ErrNotFound):
		return Default(""), nil
	default:
		return Default(""), err
	}
}

// LoadFrom reads preferences from path. Fields missing from the file keep
// their defaults.
func LoadFrom(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Preferences{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Preferences{}, fmt.Errorf("reading preferences %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML preferences over the defaults. source names the data in
// errors.
func Parse(source string, data []byte) (Preferences, error) {
	p := Default("")
	if err := toml.Unmarshal(data, &p); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return Preferences{}, perr
	}
	p.normalize()
	return p, nil
}

// normalize replaces out-of-range values with defaults.
func (p *Preferences) normalize() {
	def := Default("")
	if p.Theme == "" {
		p.Theme = def.Theme
	}
	if p.TabWidth <= 0 {
		p.TabWidth = def.TabWidth
	}
	if p.LineLengthGuide < 0 {
		p.LineLengthGuide = 0
	}
	if p.OpenMode.MaxResults <= 0 {
		p.OpenMode.MaxResults = def.OpenMode.MaxResults
	}
	if p.SearchSelect.MaxResults <= 0 {
		p.SearchSelect.MaxResults = def.SearchSelect.MaxResults
	}
}

// TabWidthFor returns the tab width for path, honouring per-extension
// overrides.
func (p Preferences) TabWidthFor(path string) int {
	if t, ok := p.typeFor(path); ok && t.TabWidth != nil && *t.TabWidth > 0 {
		return *t.TabWidth
	}
	return p.TabWidth
}

// SoftTabsFor reports whether tabs are inserted as spaces for path.
func (p Preferences) SoftTabsFor(path string) bool {
	if t, ok := p.typeFor(path); ok && t.SoftTabs != nil {
		return *t.SoftTabs
	}
	return p.SoftTabs
}

// TabContent returns the text a tab key inserts for path.
func (p Preferences) TabContent(path string) string {
	if p.SoftTabsFor(path) {
		return strings.Repeat(" ", p.TabWidthFor(path))
	}
	return "\t"
}

func (p Preferences) typeFor(path string) (TypePreferences, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" || p.Types == nil {
		return TypePreferences{}, false
	}
	t, ok := p.Types[ext]
	return t, ok
}

// ConfigDir returns the configuration directory: $QUILL_CONFIG_DIR if set,
// otherwise "quill" under the user configuration directory.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(base, "quill"), nil
}

// Path returns the preferences file path.
func Path() (string, error) {
	return configPath(fileName)
}

// SyntaxPath returns the directory holding user syntax definitions.
func SyntaxPath() (string, error) {
	return configPath(syntaxDir)
}

// ThemePath returns the directory holding user themes.
func ThemePath() (string, error) {
	return configPath(themeDir)
}

// KeymapPath returns the user keymap path for p: the configured override,
// or keymap.yaml in the config directory.
func (p Preferences) KeymapPath() (string, error) {
	if p.Keymap != "" {
		return p.Keymap, nil
	}
	return configPath(keymapFile)
}

func configPath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// ParseError reports malformed preferences.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
