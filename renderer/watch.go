package renderer

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a config file whenever it changes on disk.
// Updates are delivered on a channel so the frame callback can apply them
// on the loop's goroutine.
type ConfigWatcher struct {
	w       *fsnotify.Watcher
	path    string
	log     *slog.Logger
	updates chan Config
	done    chan struct{}
}

// WatchConfig starts watching path. The directory is watched rather than
// the file so that editors which save by rename are still observed.
func WatchConfig(path string, log *slog.Logger) (*ConfigWatcher, error) {
	if log == nil {
		log = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("renderer: config watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("renderer: config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("renderer: config watcher: %w", err)
	}
	cw := &ConfigWatcher{
		w:       w,
		path:    abs,
		log:     log,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

// Updates returns the channel of reloaded configs. Only the newest pending
// config is kept.
func (cw *ConfigWatcher) Updates() <-chan Config { return cw.updates }

func (cw *ConfigWatcher) loop() {
	defer close(cw.done)
	for {
		select {
		case ev, ok := <-cw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			c, err := LoadConfig(cw.path)
			if err != nil {
				cw.log.Warn("config reload skipped", "path", cw.path, "err", err)
				continue
			}
			select {
			case <-cw.updates:
			default:
			}
			cw.updates <- c
		case err, ok := <-cw.w.Errors:
			if !ok {
				return
			}
			cw.log.Warn("config watcher error", "err", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (cw *ConfigWatcher) Close() error {
	err := cw.w.Close()
	<-cw.done
	return err
}

// Apply updates the settings of c that can change while running: the title
// and the background color. Empty fields are left alone.
func (r *Renderer) Apply(c Config) error {
	if c.Title != "" {
		if err := r.SetTitle(c.Title); err != nil {
			return err
		}
	}
	if c.Background != "" {
		rgb, err := ParseColor(c.Background)
		if err != nil {
			return err
		}
		if err := r.SetBackgroundColor(rgb); err != nil {
			return err
		}
	}
	return nil
}
