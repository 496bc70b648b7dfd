// Package watch signals when a set of directories changes, coalescing bursts
// of filesystem events into a single notification.
package watch

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 150 * time.Millisecond

// Watcher monitors directories (non-recursively) using fsnotify.
type Watcher struct {
	// Changes receives one value per settled burst of events.
	Changes <-chan struct{}

	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New creates a Watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan struct{}, 1)
	return &Watcher{
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

// Add starts watching each directory. Re-adding a watched directory is harmless.
func (w *Watcher) Add(dirs ...string) error {
	for _, d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// Start begins delivering change notifications.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop closes the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)

	var last time.Time
	pending := false
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			pending = true
			last = time.Now()

		case <-ticker.C:
			if pending && time.Since(last) >= w.debounce {
				pending = false
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next render reflects reality anyway.
		}
	}
}

// emit delivers a notification unless one is already waiting.
func (w *Watcher) emit() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
