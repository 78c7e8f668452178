package preferences

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrefs(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "preferences.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	p := Default("")
	assert.Equal(t, DefaultTheme, p.Theme)
	assert.Equal(t, 4, p.TabWidth)
	assert.True(t, p.SoftTabs)
	assert.NotEmpty(t, p.OpenMode.Exclusions)

	assert.Equal(t, "solarized", Default("solarized").Theme)
}

func TestLoadMissing(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	p, err := LoadOrDefault()
	require.NoError(t, err, "a missing file is not an error")
	assert.Equal(t, Default(""), p)

	writePrefs(t, dir, "theme = \"quill_light\"\n")
	p, err = LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, "quill_light", p.Theme)

	writePrefs(t, dir, "theme = [")
	p, err = LoadOrDefault()
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, DefaultTheme, p.Theme)
}

func TestLoadPartial(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	writePrefs(t, dir, `
theme = "paper"
tab_width = 2

[open_mode]
exclusions = ["**/build"]

[types.go]
soft_tabs = false
tab_width = 8
`)

	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "paper", p.Theme)
	assert.Equal(t, 2, p.TabWidth)
	assert.Equal(t, []string{"**/build"}, p.OpenMode.Exclusions)
	assert.Equal(t, 10, p.OpenMode.MaxResults, "missing field keeps default")
	assert.True(t, p.SoftTabs)

	assert.Equal(t, 8, p.TabWidthFor("main.go"))
	assert.False(t, p.SoftTabsFor("main.go"))
	assert.Equal(t, "\t", p.TabContent("main.go"))
	assert.Equal(t, "  ", p.TabContent("README.md"))
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	writePrefs(t, dir, "theme = \ntab_width = 2\n")

	_, err := Load()
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Positive(t, perr.Line)
	assert.Contains(t, err.Error(), "preferences.toml")
}

func TestNormalize(t *testing.T) {
	p, err := Parse("inline", []byte("tab_width = -3\ntheme = \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, p.TabWidth)
	assert.Equal(t, DefaultTheme, p.Theme)
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	got, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	syntaxes, err := SyntaxPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "syntaxes"), syntaxes)

	themes, err := ThemePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "themes"), themes)

	keymap, err := Default("").KeymapPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "keymap.yaml"), keymap)

	custom := Default("")
	custom.Keymap = "/etc/quill/keys.yaml"
	keymap, err = custom.KeymapPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/quill/keys.yaml", keymap)
}

func TestStoreReload(t *testing.T) {
	dir := t.TempDir()
	path := writePrefs(t, dir, `theme = "one"`)
	s := NewStore(Default(""), WithPath(path))
	defer s.Close()

	assert.Equal(t, DefaultTheme, s.Get().Theme)
	require.NoError(t, s.Reload())
	assert.Equal(t, "one", s.Get().Theme)

	writePrefs(t, dir, `theme = `)
	assert.Error(t, s.Reload())
	assert.Equal(t, "one", s.Get().Theme, "failed reload keeps the old snapshot")
}

func TestStoreReloadSwapsWholeSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writePrefs(t, dir, "theme = \"one\"\ntab_width = 2\n")
	s := NewStore(Default(""), WithPath(path))
	defer s.Close()

	consistent := map[string]int{DefaultTheme: 4, "one": 2, "two": 8}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	var torn sync.Map
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				p := s.Get()
				if consistent[p.Theme] != p.TabWidth {
					torn.Store(p.Theme, p.TabWidth)
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			writePrefs(t, dir, "theme = \"two\"\ntab_width = 8\n")
		} else {
			writePrefs(t, dir, "theme = \"one\"\ntab_width = 2\n")
		}
		_ = s.Reload()
	}
	close(stop)
	wg.Wait()

	torn.Range(func(k, v any) bool {
		t.Errorf("torn snapshot: theme %v with tab width %v", k, v)
		return true
	})
}

func TestStoreSetTheme(t *testing.T) {
	s := NewStore(Default(""), WithPath(""))
	before := s.Get()

	s.SetTheme("light")
	assert.Equal(t, "light", s.Get().Theme)
	assert.Equal(t, DefaultTheme, before.Theme, "earlier snapshots are unchanged")

	assert.ErrorIs(t, s.Reload(), ErrNotFound)
}

func TestStoreWatch(t *testing.T) {
	dir := t.TempDir()
	path := writePrefs(t, dir, `theme = "one"`)
	s := NewStore(Default(""), WithPath(path), WithDebounce(10*time.Millisecond))
	defer s.Close()

	var mu sync.Mutex
	var results []error
	require.NoError(t, s.Watch(func(err error) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, err)
	}))

	writePrefs(t, dir, `theme = "two"`)

	assert.Eventually(t, func() bool {
		return s.Get().Theme == "two"
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) > 0 && results[len(results)-1] == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStoreWatchAfterClose(t *testing.T) {
	s := NewStore(Default(""), WithPath(filepath.Join(t.TempDir(), "preferences.toml")))
	s.Close()
	s.Close()
	assert.ErrorIs(t, s.Watch(nil), ErrStoreClosed)
}
