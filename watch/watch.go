// Package watch reports changes to avatar model files so the host can reload
// models or textures on its own loop.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Kind tells the host what to reload
type Kind int

const (
	KindModel Kind = iota
	KindTexture
)

// Change is one settled change of an avatar file
type Change struct {
	Path string
	Kind Kind
}

// Watcher reports a Change once a file has been quiet for the debounce
// period, so a burst of writes yields a single notification after the last one.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	fired   chan firing
	closeCh chan struct{}
	once    sync.Once
}

type firing struct {
	path string
	gen  uint64
}

type pending struct {
	timer *time.Timer
	gen   uint64
}

// NewWatcher starts watching dirs. Close releases it.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		fired:   make(chan firing),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher; Events and Errors are closed once it has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	timers := make(map[string]*pending)
	defer func() {
		for _, p := range timers {
			p.timer.Stop()
		}
	}()

	var gen uint64
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if _, ok := Classify(event.Name); !ok {
				continue
			}

			gen++
			if p, ok := timers[event.Name]; ok {
				p.timer.Stop()
			}
			timers[event.Name] = &pending{timer: w.schedule(event.Name, gen), gen: gen}
		case f := <-w.fired:
			// a timer stopped too late still fires with an old generation
			p, ok := timers[f.path]
			if !ok || p.gen != f.gen {
				continue
			}
			delete(timers, f.path)

			kind, _ := Classify(f.path)
			select {
			case w.Events <- Change{Path: f.path, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) schedule(path string, gen uint64) *time.Timer {
	return time.AfterFunc(debounce, func() {
		select {
		case w.fired <- firing{path: path, gen: gen}:
		case <-w.closeCh:
		}
	})
}

// Classify reports whether path belongs to an avatar and what it affects
func Classify(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return KindTexture, true
	case ".json", ".moc", ".moc3", ".mtn", ".yaml", ".yml":
		return KindModel, true
	default:
		return KindModel, false
	}
}
