package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/dshills/quill/internal/preferences"
	"github.com/dshills/quill/internal/view"
	"github.com/dshills/quill/internal/workspace"
)

// initializeWorkspace builds the session from the process arguments. A
// leading directory argument becomes the working directory and root; the
// remaining arguments are opened as buffers, the last one current. On
// failure the original working directory is restored.
func initializeWorkspace(args []string, v *view.View, logger *logrus.Entry) (ws *workspace.Workspace, err error) {
	initial, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("reading working directory: %w", err)
	}

	paths := args
	if len(paths) > 0 {
		paths = paths[1:]
	}

	changed := false
	if len(paths) > 0 && isDir(paths[0]) {
		dir, err := canonicalPath(paths[0])
		if err != nil {
			return nil, err
		}
		if err := os.Chdir(dir); err != nil {
			return nil, fmt.Errorf("changing directory to %s: %w", dir, err)
		}
		changed = true
		logger.WithFields(logrus.Fields{"from": initial, "to": dir}).Debug("working directory changed")
	}
	if changed {
		defer func() {
			if err == nil {
				return
			}
			if cdErr := os.Chdir(initial); cdErr != nil {
				logger.WithError(cdErr).Warn("restoring working directory")
			}
		}()
	}

	root, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("reading working directory: %w", err)
	}
	ws, err = workspace.New(root)
	if err != nil {
		return nil, err
	}

	// Buffers pick their syntax definition when added, so user definitions
	// must be in place first.
	syntaxPath, err := preferences.SyntaxPath()
	if err != nil {
		return nil, err
	}
	if err := ws.Syntax.Load(syntaxPath, true); err != nil {
		return nil, fmt.Errorf("failed to load user syntaxes: %w", err)
	}
	ws.Syntax.Link()

	if changed {
		paths = paths[1:]
	}

	for _, path := range paths {
		b, err := bufferFor(ws, path)
		if err != nil {
			return nil, err
		}
		if b == nil {
			logger.WithField("path", path).Debug("skipping directory argument")
			continue
		}
		ws.AddBuffer(b)
		if err := v.InitializeBuffer(b); err != nil {
			return nil, fmt.Errorf("initializing buffer %s: %w", b.Path, err)
		}
	}

	return ws, nil
}

// bufferFor returns a buffer for a path argument: the file's contents when
// it exists, nil for a directory, and otherwise an empty buffer targeting
// the path. A path that cannot be stat'ed for any reason is a new buffer.
func bufferFor(ws *workspace.Workspace, path string) (*workspace.Buffer, error) {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		b := workspace.NewBuffer()
		b.Path = ws.ResolvePath(path)
		return b, nil
	case info.IsDir():
		return nil, nil
	default:
		canonical, err := canonicalPath(path)
		if err != nil {
			return nil, err
		}
		return workspace.FromFile(canonical)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return resolved, nil
}
