package gen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debouncePeriod = 200 * time.Millisecond

// watch calls regenerate after schema files change, until ctx is done.
// Directories are watched rather than files so editors that save by
// rename are still seen.
func watch(ctx context.Context, logger *slog.Logger, files []string, regenerate func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	targets, dirs, err := watchTargets(files)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	timer := time.NewTimer(debouncePeriod)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("schema changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(debouncePeriod)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.Any("error", err))
		case <-timer.C:
			if err := regenerate(ctx); err != nil {
				logger.Error("generation failed", slog.Any("error", err))
			}
		}
	}
}

// watchTargets returns the absolute schema paths and their directories.
func watchTargets(files []string) (map[string]bool, []string, error) {
	targets := make(map[string]bool, len(files))
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		targets[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return targets, dirs, nil
}
