// Package watcher wraps fsnotify with recursive directory watching. It
// only reports that a path changed; interpreting and parsing the file's
// content is the caller's job (internal/application).
package watcher

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Event reports that a file under the watched tree was created or written.
type Event struct {
	Path string
}

// DirectoryWatcher recursively watches a directory tree for file
// creation and modification, re-adding new subdirectories as they appear.
type DirectoryWatcher struct {
	root string
	fsw  *fsnotify.Watcher

	mu       sync.Mutex
	done     chan struct{}
	stopOnce sync.Once

	onEvent func(Event)
	onError func(error)
}

// Config carries the callbacks a DirectoryWatcher invokes. OnEvent fires
// for every create/write on a regular file anywhere in the tree; OnError
// fires for fsnotify-reported errors.
type Config struct {
	OnEvent func(Event)
	OnError func(error)
}

// New creates a DirectoryWatcher rooted at root. Call Start to begin
// watching.
func New(root string, cfg Config) (*DirectoryWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &DirectoryWatcher{
		root:    root,
		fsw:     fsw,
		done:    make(chan struct{}),
		onEvent: cfg.OnEvent,
		onError: cfg.OnError,
	}, nil
}

// Start adds root and every subdirectory beneath it to the watch set, then
// begins processing events in a background goroutine.
func (dw *DirectoryWatcher) Start() error {
	if err := dw.addTree(dw.root); err != nil {
		return err
	}
	go dw.loop()
	return nil
}

// Stop terminates the watch loop and releases the underlying fsnotify
// watcher.
func (dw *DirectoryWatcher) Stop() {
	dw.stopOnce.Do(func() {
		close(dw.done)
		_ = dw.fsw.Close()
	})
}

func (dw *DirectoryWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dw.mu.Lock()
			addErr := dw.fsw.Add(path)
			dw.mu.Unlock()
			if addErr != nil {
				return fmt.Errorf("watch directory %s: %w", path, addErr)
			}
		}
		return nil
	})
}

func (dw *DirectoryWatcher) loop() {
	for {
		select {
		case <-dw.done:
			return
		case event, ok := <-dw.fsw.Events:
			if !ok {
				return
			}
			dw.handle(event)
		case err, ok := <-dw.fsw.Errors:
			if !ok {
				return
			}
			if dw.onError != nil {
				dw.onError(err)
			}
		}
	}
}

func (dw *DirectoryWatcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := statDir(event.Name); err == nil && info {
			if err := dw.addTree(event.Name); err != nil {
				slog.Warn("watch new subdirectory failed", "path", event.Name, "err", err)
			}
			return
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if dw.onEvent != nil {
		dw.onEvent(Event{Path: event.Name})
	}
}

func statDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
