package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports edits to config.yaml while a session is running. It
// watches the parent directory because editors often replace the file
// rather than write it in place.
type Watcher struct {
	watcher *fsnotify.Watcher
	target  string
	changes chan struct{}
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// Watch starts watching the config file of c.
func (c *Config) Watch() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: start watcher: %w", err)
	}
	if err := fw.Add(c.DataPath); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", c.DataPath, err)
	}
	w := &Watcher{
		watcher: fw,
		target:  filepath.Clean(c.ConfigPath()),
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers one value per burst of edits. Pending notifications are
// coalesced. The channel is closed by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors delivers watcher failures; the latest one wins when the reader lags.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher goroutine and releases the OS handle.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportErr(err)
		}
	}
}

// reportErr replaces any unread error with err. loop is the only sender.
func (w *Watcher) reportErr(err error) {
	select {
	case <-w.errs:
	default:
	}
	select {
	case w.errs <- err:
	default:
	}
}
