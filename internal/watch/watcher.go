// Package watch re-plans a task file whenever it changes on disk. It pairs a
// debounced fsnotify watcher with a bubbletea model so the plan stays live in
// the terminal while the file is edited.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event signals that the watched file changed and settled.
type Event struct {
	Path string
	At   time.Time
}

// Watcher watches a single task file and emits one Event per burst of
// changes. Editors tend to write several events per save (and some replace
// the file entirely), so the watcher listens on the containing directory and
// debounces before emitting.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	events   chan Event
	stopCh   chan struct{}
}

// New creates a watcher for the given file. The file itself does not need to
// exist yet; its directory does.
func New(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		events:   make(chan Event, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching for file changes.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and cleans up resources.
func (w *Watcher) Stop() {
	close(w.stopCh)
	_ = w.watcher.Close()
}

// watchLoop processes filesystem events, collapsing bursts into one Event.
func (w *Watcher) watchLoop() {
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	dirty := false

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Writes, creates and renames all count; atomic saves show up as
			// create or rename of the target path.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			dirty = true
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			if !dirty {
				continue
			}
			dirty = false

			select {
			case w.events <- Event{Path: w.path, At: time.Now()}:
			default:
				// A pending event already covers this change.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the next successful event still
			// triggers a re-plan.
			_ = err
		}
	}
}
