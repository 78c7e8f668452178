// Package index builds a searchable list of the files under a directory.
package index

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
)

// maxWalkers bounds the number of subtrees walked at once.
const maxWalkers = 8

// Index is an immutable, sorted list of root-relative file paths.
type Index struct {
	root  string
	paths []string
}

// Build walks root and indexes every regular file. Exclusions are glob
// patterns matched against slash-separated root-relative paths; an excluded
// directory is not descended into. .git directories are always skipped.
func Build(ctx context.Context, root string, exclusions []string) (*Index, error) {
	matchers := make([]glob.Glob, 0, len(exclusions))
	for _, pattern := range exclusions {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclusion %q: %w", pattern, err)
		}
		matchers = append(matchers, g)
	}
	w := &walker{root: root, exclusions: matchers}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("indexing %s: %w", root, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWalkers)

	results := make([][]string, len(entries))
	for i, entry := range entries {
		if w.excluded(entry.Name(), entry.IsDir()) {
			continue
		}
		if !entry.IsDir() {
			if entry.Type().IsRegular() {
				results[i] = []string{entry.Name()}
			}
			continue
		}
		dir := filepath.Join(root, entry.Name())
		i := i
		g.Go(func() error {
			paths, err := w.walk(ctx, dir)
			results[i] = paths
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var paths []string
	for _, r := range results {
		paths = append(paths, r...)
	}
	sort.Strings(paths)
	return &Index{root: root, paths: paths}, nil
}

type walker struct {
	root       string
	exclusions []glob.Glob
}

func (w *walker) walk(ctx context.Context, dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are left out rather than failing the index.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		if w.excluded(rel, d.IsDir()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, rel)
		}
		return nil
	})
	return paths, err
}

func (w *walker) excluded(rel string, isDir bool) bool {
	if isDir && filepath.Base(rel) == ".git" {
		return true
	}
	slashed := filepath.ToSlash(rel)
	for _, g := range w.exclusions {
		if g.Match(slashed) || g.Match("/"+slashed) {
			return true
		}
	}
	return false
}

// New creates an index over an explicit path list.
func New(root string, paths []string) *Index {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)
	return &Index{root: root, paths: sorted}
}

// Root returns the indexed directory.
func (i *Index) Root() string {
	return i.root
}

// Len returns the number of indexed files.
func (i *Index) Len() int {
	return len(i.paths)
}

// Paths returns every indexed path.
func (i *Index) Paths() []string {
	out := make([]string, len(i.paths))
	copy(out, i.paths)
	return out
}

// Find returns up to limit paths matching query, best match first. An
// empty query returns the first paths in sorted order.
func (i *Index) Find(query string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	if query == "" {
		n := min(limit, len(i.paths))
		out := make([]string, n)
		copy(out, i.paths[:n])
		return out
	}

	matches := fuzzy.Find(query, i.paths)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
