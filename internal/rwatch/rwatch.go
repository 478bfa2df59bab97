// Package rwatch re-parses a document tree whenever a watched .rst file
// changes, for the `rst2x watch` subcommand.
package rwatch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/GriffinCanCode/rst2x/internal/rlog"
)

// Handler is invoked once per changed file.
type Handler func(path string)

// Watcher wraps an fsnotify.Watcher scoped to a set of directories,
// filtering events down to Write/Create events on .rst files. Events are
// not debounced: the handler is called once for every such event, so an
// editor that fires several writes for one save triggers several calls.
type Watcher struct {
	fsw     *fsnotify.Watcher
	handler Handler
}

// New creates a Watcher over dirs, invoking handler for every .rst
// write/create event.
func New(dirs []string, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return &Watcher{fsw: fsw, handler: handler}, nil
}

// Run blocks, dispatching events until stop is closed.
func (w *Watcher) Run(stop <-chan struct{}) error {
	defer w.fsw.Close()
	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".rst" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			rlog.LogWatchEvent(event.Name, event.Op.String())
			w.handler(event.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			rlog.Error("watch error", "error", err)
		}
	}
}
