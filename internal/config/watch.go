package config

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadCallback is called with the freshly loaded config after the
// watched file changes
type ReloadCallback func(cfg *Config)

// Watcher reloads the config file when it changes on disk, so API keys
// and service settings can be updated without restarting the server.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback ReloadCallback
	debounce time.Duration

	timer  *time.Timer
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewWatcher creates a watcher for the given config file path
func NewWatcher(path string, callback ReloadCallback) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		callback: callback,
		debounce: 500 * time.Millisecond,
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching for file changes until ctx is cancelled
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				w.mu.Lock()
				if w.timer != nil {
					w.timer.Stop()
				}
				w.timer = time.AfterFunc(w.debounce, w.reload)
				w.mu.Unlock()
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher error: %v", err)
			}
		}
	}()
}

// Stop stops watching for file changes
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.watcher.Close()
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("config reload failed: %v", err)
		return
	}
	if w.callback != nil {
		w.callback(cfg)
	}
}
