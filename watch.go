package tiltcard

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce swallows the burst of events editors produce for one save.
const reloadDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a YAML config file whenever it changes on disk.
//
// The watcher goroutine only parses files. Apply results on the Ebitengine
// goroutine by calling Poll from Update, which keeps TiltCard single-threaded.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	configs chan Config
	errs    chan error
	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// WatchConfig starts watching path. The parent directory is watched rather
// than the file itself so that editors that save by rename keep working.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch config %s: %w", path, err)
	}
	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		configs: make(chan Config, 1),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.run()
	return cw, nil
}

// Poll returns the most recently reloaded config, if any, without blocking.
// A reload that failed to parse or validate is returned as an error; the
// previous config stays in effect.
func (cw *ConfigWatcher) Poll() (Config, bool, error) {
	select {
	case err := <-cw.errs:
		return Config{}, false, err
	default:
	}
	select {
	case cfg := <-cw.configs:
		return cfg, true, nil
	default:
		return Config{}, false, nil
	}
}

// Close stops the watcher. Safe to call more than once.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.closeCh)
		err = cw.watcher.Close()
		cw.wg.Wait()
	})
	return err
}

func (cw *ConfigWatcher) run() {
	defer cw.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			// Reload once the file has been quiet for reloadDebounce.
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cw.reload()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.publishErr(fmt.Errorf("watch config %s: %w", cw.path, err))
		case <-cw.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		cw.publishErr(err)
		return
	}
	// Keep only the newest config.
	select {
	case <-cw.configs:
	default:
	}
	cw.configs <- cfg
}

func (cw *ConfigWatcher) publishErr(err error) {
	select {
	case <-cw.errs:
	default:
	}
	cw.errs <- err
}
