// Package watch reloads a workbook when it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// FileWatcher reports changes to a single file.
//
// The parent directory is watched rather than the file itself: spreadsheet
// applications save by writing a temp file and renaming it over the
// original, which drops an inode-level watch.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	path      string
	onChanged func(path string)
	debounce  time.Duration
	closeOnce sync.Once
}

// NewFileWatcher starts watching path. onChanged runs on the Run goroutine
// once writes to the file have been quiet for debounce.
func NewFileWatcher(path string, debounce time.Duration, onChanged func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &FileWatcher{
		watcher:   w,
		path:      abs,
		onChanged: onChanged,
		debounce:  debounce,
	}, nil
}

// Path is the absolute path being watched.
func (fw *FileWatcher) Path() string { return fw.path }

// Run processes file system events until the context is canceled or the watcher closes.
func (fw *FileWatcher) Run(ctx context.Context) error {
	timer := time.NewTimer(fw.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if !fw.relevant(event) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("workbook changed")
			timer.Reset(fw.debounce)

		case <-timer.C:
			if fw.onChanged != nil {
				fw.onChanged(fw.path)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", fw.path).Msg("file watcher error")
		}
	}
}

// relevant reports whether event touches the watched file's content.
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops the watcher and releases resources
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		err = fw.watcher.Close()
	})
	return err
}
