package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the dataset at path whenever the file is written or
// recreated, calling onChange with the fresh dataset. Load and watcher
// failures go to onError; Watch keeps running after them. It blocks until
// ctx is done and returns nil, or returns an error if the watch cannot start.
//
// The parent directory is watched so editors that replace the file by rename
// keep triggering reloads.
func Watch(ctx context.Context, path string, onChange func(*Dataset), onError func(error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err = w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			ds, loadErr := Load(path)
			if loadErr != nil {
				if onError != nil {
					onError(loadErr)
				}
				continue
			}
			if onChange != nil {
				onChange(ds)
			}
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil && !errors.Is(werr, context.Canceled) {
				onError(werr)
			}
		}
	}
}
