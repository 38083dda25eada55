// Package strategy holds a swappable algorithm behind a capability interface.
//
// A Context is always bound to exactly one strategy. It starts bound to the
// strategy given at construction and moves from one strategy to the next
// through Set; there is no empty state and no default strategy.
package strategy

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/ainaplanass/exam/capability"
)

// Option configures a Context.
type Option[S any] func(*Context[S])

// WithName names the context in log output.
func WithName[S any](name string) Option[S] {
	return func(c *Context[S]) { c.name = name }
}

// WithLogger sets the logger used to record strategy swaps.
func WithLogger[S any](l *slog.Logger) Option[S] {
	return func(c *Context[S]) { c.logger = l }
}

// WithSwapHook registers fn to be called after every successful Set.
// fn runs outside the context's lock.
func WithSwapHook[S any](fn func(old, new S)) Option[S] {
	return func(c *Context[S]) { c.onSwap = fn }
}

// Context holds the currently bound strategy of type S.
// It is safe for concurrent use; Set takes exclusive access for its duration.
type Context[S any] struct {
	mu      sync.RWMutex
	current S

	name   string
	logger *slog.Logger
	onSwap func(old, new S)
}

// NewContext creates a Context bound to initial. A nil initial strategy
// returns capability.ErrConstruction.
func NewContext[S any](initial S, opts ...Option[S]) (*Context[S], error) {
	c := &Context[S]{
		name:   reflect.TypeOf((*S)(nil)).Elem().String(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if capability.IsNil(initial) {
		return nil, fmt.Errorf("strategy: context %s: no initial strategy: %w", c.name, capability.ErrConstruction)
	}
	c.current = initial
	return c, nil
}

// Set replaces the bound strategy. A nil strategy is rejected with
// capability.ErrConstruction and the previous strategy stays bound.
func (c *Context[S]) Set(s S) error {
	if capability.IsNil(s) {
		return fmt.Errorf("strategy: context %s: cannot bind nil strategy: %w", c.name, capability.ErrConstruction)
	}

	c.mu.Lock()
	old := c.current
	c.current = s
	c.mu.Unlock()

	c.logger.Debug("strategy swapped",
		"context", c.name,
		"from", describe(old),
		"to", describe(s),
	)
	if c.onSwap != nil {
		c.onSwap(old, s)
	}
	return nil
}

// Current returns the bound strategy.
func (c *Context[S]) Current() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Name returns the context's name.
func (c *Context[S]) Name() string { return c.name }

// Apply runs op against the bound strategy. The strategy cannot be replaced
// while op runs, so every call sees one whole strategy.
func Apply[S, A, R any](c *Context[S], op func(S, A) R, arg A) R {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return op(c.current, arg)
}

func describe(v any) string {
	if d, ok := v.(interface{ Description() string }); ok {
		return d.Description()
	}
	return reflect.TypeOf(v).String()
}
