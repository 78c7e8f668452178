package preferences

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrStoreClosed is returned by Watch after Close.
var ErrStoreClosed = errors.New("preferences store closed")

// Store is the shared handle to the current preferences. Readers always see
// a complete snapshot; Reload and SetTheme replace it atomically.
type Store struct {
	current  atomic.Pointer[Preferences]
	path     string
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPath sets the file Reload and Watch use.
func WithPath(path string) StoreOption {
	return func(s *Store) {
		s.path = path
	}
}

// WithDebounce sets how long Watch waits after the last change before
// reloading.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// NewStore creates a store holding p.
func NewStore(p Preferences, opts ...StoreOption) *Store {
	s := &Store{
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	if path, err := Path(); err == nil {
		s.path = path
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(&p)
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() Preferences {
	return *s.current.Load()
}

// Path returns the file the store reloads from.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the preferences file. On failure the current snapshot is
// kept and the error returned.
func (s *Store) Reload() error {
	if s.path == "" {
		return ErrNotFound
	}
	p, err := LoadFrom(s.path)
	if err != nil {
		return err
	}
	s.current.Store(&p)
	return nil
}

// SetTheme replaces the snapshot with one using theme.
func (s *Store) SetTheme(theme string) {
	for {
		old := s.current.Load()
		next := *old
		next.Theme = theme
		if s.current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Watch reloads the preferences whenever the file is written or created.
// onReload, if non-nil, is called after each reload attempt with its result.
// It runs on the watcher goroutine and must not block.
func (s *Store) Watch(onReload func(error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if s.watcher != nil {
		return nil
	}
	if s.path == "" {
		return ErrNotFound
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating preferences watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(s.path), err)
	}
	s.watcher = w

	s.wg.Add(1)
	go s.watchLoop(w, onReload)
	return nil
}

func (s *Store) watchLoop(w *fsnotify.Watcher, onReload func(error)) {
	defer s.wg.Done()

	target := filepath.Clean(s.path)
	var pending <-chan time.Time

	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(s.debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			if onReload != nil {
				onReload(fmt.Errorf("preferences watcher: %w", err))
			}
		case <-pending:
			pending = nil
			err := s.Reload()
			if onReload != nil {
				onReload(err)
			}
		}
	}
}

// Close stops watching. Safe to call more than once.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	w := s.watcher
	s.mu.Unlock()

	if w != nil {
		w.Close()
	}
	s.wg.Wait()
}
