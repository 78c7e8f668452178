package commands

import (
	"fmt"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/modes"
)

func registerApplication(r *Registry) {
	r.Register("application::exit", exit)
	r.Register("application::switch_to_normal_mode", switchToNormal)
	r.Register("application::switch_to_insert_mode", switchToInsert)
	r.Register("application::switch_to_command_mode", func(a *app.Application) error {
		return switchToCommand(a, r)
	})
	r.Register("application::switch_to_open_mode", switchToOpen)
	r.Register("application::switch_to_jump_mode", switchToJump)
	r.Register("application::switch_to_line_jump_mode", switchToLineJump)
	r.Register("application::switch_to_select_mode", switchToSelect)
	r.Register("application::switch_to_select_line_mode", switchToSelectLine)
	r.Register("application::switch_to_search_mode", switchToSearch)
	r.Register("application::switch_to_symbol_jump_mode", switchToSymbolJump)
	r.Register("application::switch_to_theme_mode", switchToTheme)
	r.Register("application::switch_to_path_mode", switchToPath)
	r.Register("application::reload_preferences", reloadPreferences)
}

func exit(a *app.Application) error {
	a.SwitchMode(modes.NewExit())
	return nil
}

func switchToInsert(a *app.Application) error {
	if _, err := currentBuffer(a); err != nil {
		return err
	}
	a.SwitchMode(modes.NewInsert())
	return nil
}

func switchToCommand(a *app.Application, r *Registry) error {
	limit := a.Preferences.Get().SearchSelect.MaxResults
	a.SwitchMode(modes.NewCommand(r.Names(), limit))
	return nil
}

// switchToOpen enters Open mode and starts indexing the workspace root in
// the background.
func switchToOpen(a *app.Application) error {
	prefs := a.Preferences.Get()
	open := modes.NewOpen(a.Workspace.Root, prefs.OpenMode.Exclusions, prefs.OpenMode.MaxResults)
	if a.SwitchMode(open) {
		open.Start(a.Events())
	}
	return nil
}

// switchToJump tags the words on screen.
func switchToJump(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	first, last := a.View.VisibleLines(b)
	lines := b.Lines()
	if last >= len(lines) {
		last = len(lines) - 1
	}
	a.SwitchMode(modes.NewJump(lines[first:last+1], first))
	return nil
}

func switchToLineJump(a *app.Application) error {
	if _, err := currentBuffer(a); err != nil {
		return err
	}
	a.SwitchMode(modes.NewLineJump())
	return nil
}

func switchToSelect(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	a.SwitchMode(modes.NewSelect(b.Cursor))
	return nil
}

func switchToSelectLine(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	a.SwitchMode(modes.NewSelectLine(b.Cursor.Line))
	return nil
}

// switchToSearch enters search mode with the last query prefilled.
func switchToSearch(a *app.Application) error {
	if _, err := currentBuffer(a); err != nil {
		return err
	}
	a.SwitchMode(modes.NewSearch(a.SearchQuery))
	return nil
}

func switchToSymbolJump(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	symbols := b.Syntax.Symbols(b.Lines())
	a.SwitchMode(modes.NewSymbolJump(symbols, a.Preferences.Get().SearchSelect.MaxResults))
	return nil
}

func switchToTheme(a *app.Application) error {
	a.SwitchMode(modes.NewTheme(a.View.Themes(), a.Preferences.Get().SearchSelect.MaxResults))
	return nil
}

// switchToPath prompts for the current buffer's path, prefilled relative to
// the workspace root.
func switchToPath(a *app.Application) error {
	b, err := currentBuffer(a)
	if err != nil {
		return err
	}
	a.SwitchMode(modes.NewPath(b.FileName(a.Workspace.Root)))
	return nil
}

func reloadPreferences(a *app.Application) error {
	if err := a.Preferences.Reload(); err != nil {
		return fmt.Errorf("reloading preferences: %w", err)
	}
	return nil
}
