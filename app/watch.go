package app

import (
	"context"
	"errors"
	"time"

	"github.com/ainaplanass/exam/config"
)

// Watch reloads path whenever it changes. Strategy-only changes are swapped
// in place; anything else rebuilds the storage-backed services.
func (a *App) Watch(path string, debounce time.Duration) error {
	if a.watcher != nil {
		return errors.New("app: already watching")
	}
	reloader, err := config.NewReloader(a.Config(), func(cfg *config.Config) error {
		return a.Apply(context.Background(), cfg)
	}, a, a.logger)
	if err != nil {
		return err
	}

	opts := []config.WatcherOption{config.WithWatchLogger(a.logger)}
	if debounce > 0 {
		opts = append(opts, config.WithWatchDebounce(debounce))
	}
	w := config.NewWatcher(config.NewFileSource(path), reloader.HandleChange, opts...)
	if err := w.Start(); err != nil {
		return err
	}
	a.watcher = w
	return nil
}
