// Package watch reports changes to a single directory so its candidate list
// can be resolved again. Bursts of filesystem events are coalesced into one
// notification.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/pkg/pattern"
)

// DefaultDebounce is how long the watcher waits for further events before
// reporting a change.
const DefaultDebounce = 200 * time.Millisecond

// Change is one coalesced notification
type Change struct {
	// Names are the base names of the entries touched, sorted
	Names     []string
	Timestamp time.Time
}

// Watcher monitors one directory using fsnotify
type Watcher struct {
	dir      string
	filter   pattern.Matcher
	debounce time.Duration

	changes   chan Change
	stopChan  chan struct{}
	done      chan struct{}
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
	stopped bool
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithFilter only reports entries whose name matches m
func WithFilter(m pattern.Matcher) Option {
	return func(w *Watcher) {
		w.filter = m
	}
}

// New creates a watcher for dir
func New(dir string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewProbeError("directory not found", dir, errors.DirectoryNotFound, err)
		}
		return nil, errors.NewProbeError("cannot access directory", dir, errors.DirectoryAccessDenied, err)
	}
	if !info.IsDir() {
		return nil, errors.NewProbeError("not a directory", dir, errors.DirectoryReadFailed, nil)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w := &Watcher{
		dir:       dir,
		debounce:  DefaultDebounce,
		changes:   make(chan Change, 1),
		fsWatcher: fsWatcher,
	}
	for _, opt := range opts {
		opt(w)
	}
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return w, nil
}

// Dir returns the watched directory
func (w *Watcher) Dir() string {
	return w.dir
}

// Changes returns the channel of coalesced notifications. It is closed by
// Stop.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing events
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	if w.stopped || w.stopChan != nil {
		return fmt.Errorf("watcher cannot be restarted")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if len(pending) == 0 {
				timer.Reset(w.debounce)
			}
			pending[filepath.Base(event.Name)] = struct{}{}

		case <-timer.C:
			change := Change{Names: sortedNames(pending), Timestamp: time.Now()}
			pending = map[string]struct{}{}
			log.LogWithFields(log.F("directory", w.dir), log.F("entries", len(change.Names))).Debug("directory changed")
			select {
			case w.changes <- change:
			case <-w.stopChan:
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithError(err).Error("fsnotify watcher error")

		case <-w.stopChan:
			timer.Stop()
			return
		}
	}
}

// relevant drops chmod-only events and names outside the filter
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.filter != nil && !w.filter.Match(filepath.Base(event.Name)) {
		return false
	}
	return true
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Stop halts the watcher, releases the fsnotify watcher and closes the
// Changes channel. It is safe to call before Start and more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	if w.running {
		close(w.stopChan)
		<-w.done
		w.running = false
	}

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithError(err).Error("Error closing fsnotify watcher")
	}
	close(w.changes)
	log.Debug("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
