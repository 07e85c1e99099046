// Package watch observes a repository working tree and triggers commit
// runs when files settle after a burst of changes.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Defaults for the watch loop timing.
const (
	DefaultDebounceInterval  = 500 * time.Millisecond
	DefaultMinCommitInterval = 400 * time.Millisecond
)

// CommitFunc runs one commit pass over the current working tree state.
type CommitFunc func(ctx context.Context) error

// Config tunes the watch loop.
type Config struct {
	// DebounceInterval is how long the tree must stay quiet after the
	// last change before a commit pass starts.
	DebounceInterval time.Duration

	// MinCommitInterval is the minimum spacing between the end of one
	// commit pass and the start of the next.
	MinCommitInterval time.Duration
}

// DefaultConfig returns the standard watch timing.
func DefaultConfig() Config {
	return Config{
		DebounceInterval:  DefaultDebounceInterval,
		MinCommitInterval: DefaultMinCommitInterval,
	}
}

// Watcher drives commit passes from filesystem events.
type Watcher struct {
	root   string
	cfg    Config
	commit CommitFunc
	logger *slog.Logger
}

// New creates a Watcher over root that calls commit when changes settle.
func New(root string, cfg Config, commit CommitFunc) *Watcher {
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.MinCommitInterval <= 0 {
		cfg.MinCommitInterval = DefaultMinCommitInterval
	}
	return &Watcher{
		root:   root,
		cfg:    cfg,
		commit: commit,
		logger: slog.Default(),
	}
}

// loopState is owned by the run loop goroutine. Commit passes run in a
// separate goroutine and report back over a channel, so no locking is
// needed.
type loopState struct {
	inFlight   bool
	lastFinish time.Time
}

// Run blocks, watching the tree and firing commit passes, until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer notifier.Close()

	if err := w.addRecursive(notifier, w.root); err != nil {
		return err
	}

	// Debounce timer, created stopped. Each relevant event restarts it,
	// so it only fires once the tree has been quiet for the full window.
	debounce := time.NewTimer(w.cfg.DebounceInterval)
	debounce.Stop()

	done := make(chan error, 1)
	var state loopState

	for {
		select {
		case <-ctx.Done():
			if state.inFlight {
				<-done
			}
			return ctx.Err()

		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// New directories need watches of their own.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(notifier, event.Name); err != nil {
						w.logger.Warn("watch new directory", "path", event.Name, "error", err)
					}
				}
			}
			debounce.Reset(w.cfg.DebounceInterval)

		case err, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-debounce.C:
			if state.inFlight {
				// A pass is already running; changes it misses will
				// raise new events afterwards.
				w.logger.Debug("commit pass in flight, trigger dropped")
				continue
			}
			if wait := w.cfg.MinCommitInterval - time.Since(state.lastFinish); wait > 0 {
				debounce.Reset(wait)
				continue
			}
			state.inFlight = true
			go func() {
				done <- w.commit(ctx)
			}()

		case err := <-done:
			state.inFlight = false
			state.lastFinish = time.Now()
			if err != nil && ctx.Err() == nil {
				w.logger.Warn("commit pass failed", "error", err)
			}
		}
	}
}

// addRecursive watches dir and every subdirectory under it, skipping
// ignored directories.
func (w *Watcher) addRecursive(notifier *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // directory vanished mid-walk
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignoredDir(d.Name()) && path != dir {
			return filepath.SkipDir
		}
		return notifier.Add(path)
	})
}

// ignoredDir reports whether a directory's contents should never
// trigger commits.
func (w *Watcher) ignoredDir(name string) bool {
	switch name {
	case ".git", "node_modules", ".idea", ".vscode":
		return true
	}
	return false
}

// relevant filters out events that should not restart the debounce
// window.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if w.ignoredDir(part) {
			return false
		}
	}
	return true
}
