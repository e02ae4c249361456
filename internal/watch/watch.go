// Package watch re-runs a job whenever one of a set of files changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before the job runs.
const DefaultDebounce = 300 * time.Millisecond

// Job is run after a burst of changes. changed lists the touched files, sorted.
type Job func(ctx context.Context, changed []string) error

// Watcher watches a fixed set of files.
// Parent directories are watched rather than the files themselves, so files
// replaced by rename (as most editors and spreadsheet programs save) keep being seen.
type Watcher struct {
	files    []string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// OnError receives job errors. The watcher keeps running after a failed job.
	OnError func(error)
}

// New creates a Watcher for files.
func New(files []string, debounce time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{debounce: debounce, watcher: fw}
	var dirs []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		w.files = append(w.files, abs)
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	return w, nil
}

// Files returns the absolute paths being watched.
func (w *Watcher) Files() []string {
	return append([]string(nil), w.files...)
}

// Run blocks until ctx is cancelled or the underlying watcher fails,
// running job after every debounced burst of changes.
func (w *Watcher) Run(ctx context.Context, job Job) error {
	return loop(ctx, w.watcher.Events, w.watcher.Errors, w.isWatched, w.debounce, job, w.OnError)
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) isWatched(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return slices.Contains(w.files, abs)
}

// relevant reports whether an event can change a file's content.
func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// loop is the event loop, separated from fsnotify for testing.
func loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error,
	match func(string) bool, debounce time.Duration, job Job, onError func(error)) error {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return errors.New("watcher closed")
			}
			if !relevant(ev) || !match(ev.Name) {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(debounce)

		case err, ok := <-errs:
			if !ok {
				return errors.New("watcher closed")
			}
			return fmt.Errorf("watcher error: %w", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			clear(pending)

			if err := job(ctx, changed); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
