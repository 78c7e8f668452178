package commands

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/quill/internal/input/key"
)

//go:embed keymap.yaml
var defaultKeymap []byte

// Keymap binds keys to command names per mode. Keys are stored in their
// canonical key.Event form.
type Keymap map[string]map[string][]string

// commandList accepts a single command name or a list of them.
type commandList []string

func (c *commandList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*c = commandList{node.Value}
		return nil
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		*c = names
		return nil
	default:
		return fmt.Errorf("line %d: expected a command or list of commands", node.Line)
	}
}

// KeymapError reports an invalid keymap file.
type KeymapError struct {
	Source string
	Err    error
}

func (e *KeymapError) Error() string {
	return fmt.Sprintf("keymap %s: %v", e.Source, e.Err)
}

func (e *KeymapError) Unwrap() error {
	return e.Err
}

// ParseKeymap decodes a YAML keymap. source names it in errors.
func ParseKeymap(source string, data []byte) (Keymap, error) {
	var raw map[string]map[string]commandList
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &KeymapError{Source: source, Err: err}
	}

	km := make(Keymap, len(raw))
	for mode, bindings := range raw {
		km[mode] = make(map[string][]string, len(bindings))
		for spec, names := range bindings {
			k, err := key.Parse(spec)
			if err != nil {
				return nil, &KeymapError{Source: source, Err: fmt.Errorf("mode %s: %w", mode, err)}
			}
			km[mode][k.String()] = names
		}
	}
	return km, nil
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() Keymap {
	km, err := ParseKeymap("built-in", defaultKeymap)
	if err != nil {
		panic(err)
	}
	return km
}

// LoadKeymap returns the built-in bindings overridden by the file at path.
// A missing file leaves the defaults.
func LoadKeymap(path string) (Keymap, error) {
	km := DefaultKeymap()
	if path == "" {
		return km, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return km, nil
	}
	if err != nil {
		return nil, &KeymapError{Source: path, Err: err}
	}
	user, err := ParseKeymap(path, data)
	if err != nil {
		return nil, err
	}
	km.Merge(user)
	return km, nil
}

// Merge overlays other's bindings onto km, key by key.
func (km Keymap) Merge(other Keymap) {
	for mode, bindings := range other {
		if km[mode] == nil {
			km[mode] = make(map[string][]string, len(bindings))
		}
		for k, names := range bindings {
			km[mode][k] = names
		}
	}
}

// Lookup returns the commands bound to k in mode.
func (km Keymap) Lookup(mode string, k key.Event) ([]string, bool) {
	names, ok := km[mode][k.String()]
	return names, ok && len(names) > 0
}
