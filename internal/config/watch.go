package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invokes onChange whenever the config file is rewritten. Editors
// often replace the file instead of writing in place, so the watch is
// on the directory and filtered by name. The returned stop function
// releases the watcher.
func Watch(path string, onChange func()) (stop func() error, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Name != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				onChange()
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return w.Close, nil
}
