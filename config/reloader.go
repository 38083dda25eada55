package config

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// StrategyApplier swaps running strategies to match a new config without
// rebuilding anything else.
type StrategyApplier interface {
	ApplyStrategies(ctx context.Context, cfg *Config) error
}

// Reloader decides how to apply a config change. Changes limited to strategy
// selection go to the StrategyApplier; anything else needs a full reload.
type Reloader struct {
	mu          sync.Mutex
	current     *Config
	currentHash string
	logger      *slog.Logger

	fullReloadFn func(*Config) error
	applier      StrategyApplier
}

// NewReloader creates a Reloader starting from initial. applier may be nil,
// in which case every change is a full reload.
func NewReloader(initial *Config, fullReloadFn func(*Config) error, applier StrategyApplier, logger *slog.Logger) (*Reloader, error) {
	hash, err := HashConfig(initial)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reloader{
		current:      initial,
		currentHash:  hash,
		logger:       logger,
		fullReloadFn: fullReloadFn,
		applier:      applier,
	}, nil
}

// CurrentHash returns the hash of the config most recently applied.
func (r *Reloader) CurrentHash() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentHash
}

// Current returns the config most recently applied.
func (r *Reloader) Current() *Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// HandleChange applies a change event. The current config only advances
// when the change was applied successfully.
func (r *Reloader) HandleChange(evt ChangeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hash, err := HashConfig(evt.Config)
	if err != nil {
		return fmt.Errorf("config reloader: hash: %w", err)
	}
	if hash == r.currentHash {
		r.logger.Debug("config change already applied", "source", evt.Source)
		return nil
	}

	diff := DiffConfigs(r.current, evt.Config)
	if diff.Empty() {
		r.logger.Debug("config change detected but no effective differences")
		return nil
	}

	if diff.StrategiesOnly() && r.applier != nil {
		r.logger.Info("applying strategy changes", "discount", diff.Discount, "shipping", diff.Shipping)
		if err := r.applier.ApplyStrategies(context.Background(), evt.Config); err != nil {
			return err
		}
	} else {
		r.logger.Info("performing full reload",
			"storage", diff.Storage, "log", diff.Log, "metrics", diff.Metrics, "bookly", diff.Bookly)
		if err := r.fullReloadFn(evt.Config); err != nil {
			return err
		}
	}
	r.current = evt.Config
	r.currentHash = hash
	return nil
}
