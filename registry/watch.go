package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long Watch waits after the last change before
// calling onChange, so an editor's save burst triggers one reload.
var WatchDebounce = 200 * time.Millisecond

// Watch calls onChange whenever a model file below dir is created, written,
// removed or renamed. It blocks until ctx is done.
func Watch(ctx context.Context, dir string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(dir)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}

	timer := time.NewTimer(WatchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// fsnotify watches are not recursive.
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if !isModelFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)

		case <-timer.C:
			onChange()
		}
	}
}

// watchDirs returns dir and every directory holding a model file below it.
func watchDirs(dir string) ([]string, error) {
	paths, err := modelFiles(dir)
	if err != nil {
		return nil, err
	}

	dirs := []string{filepath.Clean(dir)}
	for _, path := range paths {
		d := filepath.Clean(filepath.Dir(path))
		if !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs, nil
}

func isModelFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	return slices.Contains(modelExtensions, strings.ToLower(ext))
}
