package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/utils"
)

// Watcher reloads the configuration when its file changes on disk and hands
// the result to a callback. The parent directory is watched so that editors
// which replace the file on save are handled.
type Watcher struct {
	path     string
	flags    *Flags
	onChange func(*Config)
	delay    time.Duration

	watcher   *fsnotify.Watcher
	debouncer utils.Debouncer

	mu       sync.Mutex
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher starts watching path. onChange runs on the watcher's goroutine
// after each successful reload.
func NewWatcher(path string, flags *Flags, onChange func(*Config)) (*Watcher, error) {
	effective, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(effective)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		flags:    flags,
		onChange: onChange,
		delay:    ReloadDebounce,
		watcher:  fsw,
		closeCh:  make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	logger.DebugTagf("config", "Watching config file %s", abs)
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debouncer.Debounce(w.delay, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("Config watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := Reload(w.path, w.flags)
	if err != nil {
		logger.Warnf("Config reload failed, keeping previous settings: %v", err)
		return
	}
	logger.InfoTagf("config", "Configuration reloaded from %s", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.debouncer.Stop()
	w.closedWg.Wait()
	return w.watcher.Close()
}
