// Package app wires the capability registry, the instrumented dispatch
// engine and every service from one Config, and keeps the running strategies
// in step with the config file.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/ainaplanass/exam/animal"
	"github.com/ainaplanass/exam/bookly"
	"github.com/ainaplanass/exam/capability"
	"github.com/ainaplanass/exam/config"
	"github.com/ainaplanass/exam/device"
	"github.com/ainaplanass/exam/discount"
	"github.com/ainaplanass/exam/dispatch"
	"github.com/ainaplanass/exam/payment"
	"github.com/ainaplanass/exam/shipping"
	"github.com/ainaplanass/exam/storage"
	"github.com/ainaplanass/exam/user"
)

const (
	discountCapability = "discount"
	shippingCapability = "shipping"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger. Without it the logger is built from cfg.Log
// and writes to stderr.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithTracer sets the tracer used by the dispatch engine.
func WithTracer(t trace.Tracer) Option {
	return func(a *App) { a.tracer = t }
}

// App is a running application.
type App struct {
	logger *slog.Logger
	tracer trace.Tracer

	registry *capability.Registry
	engine   *dispatch.Engine
	discount *discount.Calculator
	shipping *shipping.Calculator
	orders   *bookly.Pipeline

	mu       sync.RWMutex
	cfg      *config.Config
	store    storage.Store
	users    *user.Service
	reporter bookly.TextReporter

	watcher *config.Watcher
}

// New builds an App from cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = config.NewLogger(cfg.Log, os.Stderr)
	}

	a.registry = capability.NewRegistry()
	if err := registerCapabilities(a.registry); err != nil {
		return nil, fmt.Errorf("app: register capabilities: %w", err)
	}
	engineOpts := []dispatch.Option{
		dispatch.WithLogger(a.logger),
		dispatch.WithMetrics(dispatch.NewMetrics(cfg.Metrics.Namespace)),
	}
	if a.tracer != nil {
		engineOpts = append(engineOpts, dispatch.WithTracer(a.tracer))
	}
	a.engine = dispatch.NewEngine(a.registry, engineOpts...)

	ds, err := a.bindDiscount(cfg.Discount)
	if err != nil {
		return nil, err
	}
	if a.discount, err = discount.NewCalculator(ds.Value(), a.logger); err != nil {
		return nil, err
	}
	ss, err := a.bindShipping(cfg.Shipping)
	if err != nil {
		return nil, err
	}
	if a.shipping, err = shipping.NewCalculator(ss.Value(), a.logger); err != nil {
		return nil, err
	}

	a.orders = bookly.NewPipeline(bookly.WithLogger(a.logger))

	b, err := a.openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.commit(cfg, b)
	a.logger.Info("app started",
		"discount", a.discount.Description(),
		"storage", cfg.Storage.Driver,
		"capabilities", len(a.registry.ListCapabilities()))
	return a, nil
}

func registerCapabilities(reg *capability.Registry) error {
	for _, register := range []func(*capability.Registry) error{
		animal.Register,
		device.Register,
		payment.Register,
	} {
		if err := register(reg); err != nil {
			return err
		}
	}
	err := reg.Populate(
		[]capability.Contract{capability.ContractFor[discount.Strategy](discountCapability, "Computes a customer discount")},
		map[string]any{
			"regular":  discount.Regular{},
			"premium":  discount.Premium{},
			"vip":      discount.VIP{},
			"employee": discount.Employee{},
			"percent":  discount.Percent{},
		},
	)
	if err != nil {
		return err
	}
	return reg.Populate(
		[]capability.Contract{capability.ContractFor[shipping.Strategy](shippingCapability, "Computes a shipping cost")},
		map[string]any{
			"standard":  shipping.Standard{},
			"express":   shipping.Express{},
			"overnight": shipping.Overnight{},
			"same-day":  shipping.SameDay{},
		},
	)
}

// backend is everything that depends on the storage backend and the report
// locale.
type backend struct {
	store    storage.Store
	users    *user.Service
	reporter bookly.TextReporter
}

// openBackend builds a backend for cfg without touching the running one.
// On error nothing is left open.
func (a *App) openBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	store, err := storage.Open(ctx, cfg.Storage, a.logger)
	if err != nil {
		return backend{}, err
	}
	users, err := user.NewService(store, user.WithLogger(a.logger))
	if err != nil {
		_ = store.Close()
		return backend{}, err
	}
	reporter, err := bookly.NewTextReporter(cfg.Bookly.Locale)
	if err != nil {
		_ = store.Close()
		return backend{}, fmt.Errorf("app: report locale: %w", err)
	}
	return backend{store: store, users: users, reporter: reporter}, nil
}

// commit makes cfg and b current and closes the previous store.
func (a *App) commit(cfg *config.Config, b backend) {
	a.mu.Lock()
	old := a.store
	a.cfg, a.store, a.users, a.reporter = cfg, b.store, b.users, b.reporter
	a.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			a.logger.Warn("closing previous store", "backend", old.Name(), "error", err)
		}
	}
}

// Registry returns the capability registry.
func (a *App) Registry() *capability.Registry { return a.registry }

// Engine returns the instrumented dispatch engine.
func (a *App) Engine() *dispatch.Engine { return a.engine }

// Discount returns the discount calculator.
func (a *App) Discount() *discount.Calculator { return a.discount }

// Shipping returns the shipping calculator.
func (a *App) Shipping() *shipping.Calculator { return a.shipping }

// Users returns the current user service.
func (a *App) Users() *user.Service {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.users
}

// Store returns the current storage backend.
func (a *App) Store() storage.Store {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.store
}

// Config returns the config the app is running with.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// ProcessOrders prices orders, archives the summary in the store under
// "bookly:<batch id>" and writes the report to w.
func (a *App) ProcessOrders(ctx context.Context, orders []bookly.Order, w io.Writer) (bookly.Summary, error) {
	s, err := a.orders.Process(ctx, orders)
	if err != nil {
		return bookly.Summary{}, err
	}

	a.mu.RLock()
	store, reporter := a.store, a.reporter
	a.mu.RUnlock()

	data, err := json.Marshal(s)
	if err != nil {
		return bookly.Summary{}, fmt.Errorf("app: encode summary: %w", err)
	}
	if err := store.Save(ctx, "bookly:"+s.BatchID, string(data)); err != nil {
		return bookly.Summary{}, fmt.Errorf("app: archive summary: %w", err)
	}
	if w != nil {
		if err := reporter.Report(w, s); err != nil {
			return bookly.Summary{}, fmt.Errorf("app: write report: %w", err)
		}
	}
	return s, nil
}

// QueryBatch runs a jq expression over the summary archived for batchID.
func (a *App) QueryBatch(ctx context.Context, batchID, expression string) ([]any, error) {
	q, err := bookly.CompileQuery(expression)
	if err != nil {
		return nil, err
	}
	raw, err := a.Store().Load(ctx, "bookly:"+batchID)
	if err != nil {
		return nil, fmt.Errorf("app: batch %s: %w", batchID, err)
	}
	var s bookly.Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("app: decode batch %s: %w", batchID, err)
	}
	return q.Run(s)
}

// Close stops the config watcher and closes the store.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Stop())
	}
	a.mu.Lock()
	store := a.store
	a.store = nil
	a.mu.Unlock()
	if store != nil {
		errs = append(errs, store.Close())
	}
	return errors.Join(errs...)
}
