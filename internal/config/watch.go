package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it is written, created or renamed into place
// and hands the result to onChange. The parent directory is watched so
// atomic replacements are seen. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(Config, error)) error {
	if onChange == nil {
		return fmt.Errorf("config: watch: nil callback")
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if _, err := os.Stat(target); err != nil {
					continue
				}
				onChange(Load(target))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onChange(Config{}, fmt.Errorf("config: watch: %w", err))
			}
		}
	}()
	return nil
}
