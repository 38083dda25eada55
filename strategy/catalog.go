package strategy

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownStrategy is returned by Catalog.New for a name with no constructor.
// It only arises where strategies are chosen by name, such as configuration.
var ErrUnknownStrategy = errors.New("strategy: unknown strategy")

// Catalog maps configuration names to strategy constructors.
type Catalog[S any] struct {
	mu       sync.RWMutex
	builders map[string]func() S
}

// NewCatalog creates an empty catalog.
func NewCatalog[S any]() *Catalog[S] {
	return &Catalog[S]{builders: make(map[string]func() S)}
}

// Register adds a constructor under name, replacing any previous one.
func (c *Catalog[S]) Register(name string, fn func() S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = fn
}

// New builds the strategy registered under name.
func (c *Catalog[S]) New(name string) (S, error) {
	c.mu.RLock()
	fn, ok := c.builders[name]
	c.mu.RUnlock()
	if !ok {
		var zero S
		return zero, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return fn(), nil
}

// Names returns the registered names in sorted order.
func (c *Catalog[S]) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.builders))
	for name := range c.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
