package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is the time to wait for rapid changes to settle before reloading.
const debounce = 100 * time.Millisecond

// Watch reloads the config file at path whenever it is written or created,
// calling onChange with each valid new configuration. Invalid reloads are
// logged and ignored. Watching stops when ctx is canceled.
// The onChange function is called from a single goroutine.
func Watch(ctx context.Context, path string, getenv func(string) string, log *slog.Logger, onChange func(*Config)) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Editors often replace files rather than writing them, so watch the
	// directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch config dir: %w", err)
	}
	go watch(ctx, w, abs, getenv, log, onChange)
	return nil
}

func watch(ctx context.Context, w *fsnotify.Watcher, abs string, getenv func(string) string, log *slog.Logger, onChange func(*Config)) {
	defer w.Close()
	t := time.NewTimer(debounce)
	t.Stop()
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Name != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			t.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", slog.Any("err", err))
		case <-t.C:
			cfg, err := read(abs, getenv)
			if err != nil {
				log.Error("ignoring invalid config", slog.String("path", abs), slog.Any("err", err))
				continue
			}
			log.Info("config reloaded", slog.String("path", abs))
			onChange(cfg)
		}
	}
}
