package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of editor writes into one re-run.
const DefaultDebounce = 150 * time.Millisecond

// Watch calls onChange with the changed inputs each time any of paths is
// written, created or renamed. Bursts within debounce are merged. It returns
// when ctx is cancelled or onChange returns an error.
func Watch(ctx context.Context, paths []string, debounce time.Duration, onChange func(changed []string) error) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// редакторы заменяют файл целиком, поэтому следим за каталогами
	wanted := make(map[string]string, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		wanted[abs] = p
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			orig, ok := wanted[abs]
			if !ok {
				continue
			}
			pending[orig] = struct{}{}
			timer.Reset(debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			if err := onChange(changed); err != nil {
				return err
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// ошибки наблюдателя не фатальны
		}
	}
}
