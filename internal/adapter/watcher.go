package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

// DefaultDebounce is how long the watcher waits for more events before
// reporting a batch.
const DefaultDebounce = 200 * time.Millisecond

// ChangeHandler receives the distinct files changed in a debounce window.
type ChangeHandler func(ctx context.Context, changed []m.Path)

// Watcher reports file changes under a set of roots until the context ends.
type Watcher interface {
	Watch(ctx context.Context, roots []m.Path, onChange ChangeHandler) error
}

// FSNotifyWatcher is the fsnotify-backed Watcher.
type FSNotifyWatcher struct {
	debounce time.Duration
}

// NewFSNotifyWatcher constructs a watcher. A non-positive debounce uses
// DefaultDebounce.
func NewFSNotifyWatcher(debounce time.Duration) *FSNotifyWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FSNotifyWatcher{debounce: debounce}
}

// Watch blocks until ctx is cancelled. Directories under each root are
// watched recursively, except hidden and dependency directories; a file root
// watches its parent directory.
func (w *FSNotifyWatcher) Watch(ctx context.Context, roots []m.Path, onChange ChangeHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() { _ = watcher.Close() }()

	for _, root := range roots {
		if err := addWatchRoot(watcher, string(root)); err != nil {
			return err
		}
	}

	pending := map[string]struct{}{}

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !skipWatchDir(filepath.Base(event.Name)) {
						_ = addWatchRoot(watcher, event.Name)
					}

					continue
				}
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			pending[event.Name] = struct{}{}

			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Warn("File watcher error", "error", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}

			changed := make([]m.Path, 0, len(pending))
			for name := range pending {
				changed = append(changed, m.Path(name))
			}

			sort.Slice(changed, func(i, j int) bool { return changed[i] < changed[j] })

			pending = map[string]struct{}{}

			onChange(ctx, changed)
		}
	}
}

func addWatchRoot(watcher *fsnotify.Watcher, root string) error {
	root = strings.TrimSuffix(root, "/...")

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}

		if path != root && skipWatchDir(d.Name()) {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

// skipWatchDir reports directories never worth watching: dependencies and
// hidden directories such as .git and the default reports directory.
func skipWatchDir(name string) bool {
	if name == "node_modules" || name == "vendor" {
		return true
	}

	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}
