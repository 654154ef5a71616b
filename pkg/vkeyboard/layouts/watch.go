package layouts

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Loaded is delivered for every layout file the watcher decodes.
type Loaded struct {
	Path   string
	Tables []Table
	Err    error
}

// Watcher reports layout files that appear or change in a set of directories.
// Layouts are append-only, so consumers decide what a changed file means.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dirs      []string
	debounce  time.Duration

	pending   map[string]time.Time
	pendingMu sync.Mutex

	loaded chan Loaded

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for dirs. Nothing is watched until Start.
func NewWatcher(dirs []string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		dirs:      dirs,
		debounce:  debounce,
		pending:   make(map[string]time.Time),
		loaded:    make(chan Loaded, 16),
		done:      make(chan struct{}),
	}, nil
}

// Loaded returns the channel of decoded files.
func (w *Watcher) Loaded() <-chan Loaded {
	return w.loaded
}

// Start scans every directory once, reporting existing files, then watches for changes.
// When Start fails the underlying watcher is closed and w must not be started again.
func (w *Watcher) Start() (err error) {
	defer func() {
		if err != nil {
			w.fsWatcher.Close()
		}
	}()

	var initial []string

	for _, dir := range w.dirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		if err := w.fsWatcher.Add(absDir); err != nil {
			return err
		}

		entries, err := os.ReadDir(absDir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(absDir, entry.Name())
			if _, err := FormatFromPath(path); err == nil {
				initial = append(initial, path)
			}
		}
	}

	w.wg.Add(3)
	go w.eventLoop()
	go w.debounceLoop()
	go func() {
		defer w.wg.Done()
		for _, path := range initial {
			w.emit(path)
		}
	}()

	return nil
}

// Stop shuts the watcher down and closes the Loaded channel.
func (w *Watcher) Stop() error {
	close(w.done)
	w.wg.Wait()
	close(w.loaded)
	return w.fsWatcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if _, err := FormatFromPath(event.Name); err != nil {
				continue
			}
			w.pendingMu.Lock()
			w.pending[event.Name] = time.Now()
			w.pendingMu.Unlock()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.send(Loaded{Err: err})
		}
	}
}

// debounceLoop waits for a file to stop changing before decoding it, so an
// editor's truncate-then-write does not surface a half written file.
func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			var ready []string

			w.pendingMu.Lock()
			for path, seen := range w.pending {
				if time.Since(seen) >= w.debounce {
					ready = append(ready, path)
					delete(w.pending, path)
				}
			}
			w.pendingMu.Unlock()

			for _, path := range ready {
				w.emit(path)
			}
		}
	}
}

func (w *Watcher) emit(path string) {
	tables, err := LoadFile(path)
	w.send(Loaded{Path: path, Tables: tables, Err: err})
}

func (w *Watcher) send(l Loaded) {
	select {
	case w.loaded <- l:
	case <-w.done:
	}
}
