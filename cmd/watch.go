package cmd

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors tend to emit bursts of events per save.
const watchDebounce = 200 * time.Millisecond

// Run fn once and again every time the file at path changes, until stop is
// closed. Errors returned by fn are logged and do not stop the watcher.
func watchFile(path string, stop <-chan struct{}, fn func() error) error {
	if strings.Contains(path, "://") {
		return errors.New("only local scene files can be watched")
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the parent folder; editors often replace the file on save which
	// drops watches on the file itself.
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	if err = fn(); err != nil {
		logger.Error(err)
	}
	logger.Noticef("watching %s for changes", path)

	var debounce <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			logger.Noticef("%s changed", path)
			if err = fn(); err != nil {
				logger.Error(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watcher error: %s", err)
		case <-stop:
			return nil
		}
	}
}

// Get a channel that is closed on the first interrupt signal.
func interruptChan() <-chan struct{} {
	stop := make(chan struct{})
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt)
	go func() {
		<-sigC
		signal.Stop(sigC)
		close(stop)
	}()
	return stop
}
