package gfx

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor emits on save.
const reloadDelay = 150 * time.Millisecond

// Watcher signals when shader files in a directory change.
type Watcher struct {
	w       *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

// WatchShaders starts watching dir for .vert and .frag writes.
func WatchShaders(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("gfx: watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("gfx: watch %s: %w", dir, err)
	}
	w := &Watcher{
		w:       fw,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changed receives once per settled burst of shader edits.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

func (w *Watcher) loop() {
	defer close(w.done)
	var timer <-chan time.Time
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !isShader(ev.Name) || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("gfx: shader changed", "file", ev.Name, "op", ev.Op.String())
			timer = time.After(reloadDelay)
		case <-timer:
			timer = nil
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			slog.Warn("gfx: shader watcher error", "err", err)
		}
	}
}

func isShader(name string) bool {
	switch filepath.Ext(name) {
	case ".vert", ".frag":
		return true
	}
	return false
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return err
}
