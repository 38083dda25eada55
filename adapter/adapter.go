// Package adapter normalizes values of incompatible native shapes to one
// target capability.
//
// A Registry maps each adaptee's Go type to the one constructor that adapts
// it. Adapt is a single map lookup on the adaptee's own type; there is no
// format branching, and every adapter it returns is specialized to one kind.
package adapter

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/ainaplanass/exam/capability"
)

// UnsupportedError reports an adaptee kind no adapter is registered for.
// It unwraps to capability.ErrFormatUnsupported.
type UnsupportedError struct {
	Kind string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("adapter: unsupported format %q", e.Kind)
}

func (e *UnsupportedError) Unwrap() error { return capability.ErrFormatUnsupported }

// Option configures a Registry.
type Option[T any] func(*Registry[T])

// WithFallback makes Adapt return fn(adaptee) for adaptee types with no
// registered constructor, instead of an *UnsupportedError.
func WithFallback[T any](fn func(any) T) Option[T] {
	return func(r *Registry[T]) { r.fallback = fn }
}

// WithLogger sets the registry's logger.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(r *Registry[T]) { r.logger = l }
}

// Registry holds adapter constructors keyed by adaptee type. It is safe for
// concurrent use.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[reflect.Type]func(any) T
	fallback  func(any) T
	logger    *slog.Logger
}

// NewRegistry creates an empty adapter registry for target capability T.
func NewRegistry[T any](opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{
		factories: make(map[reflect.Type]func(any) T),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Register installs fn as the adapter constructor for adaptees of type A.
// A later registration for the same A replaces the earlier one.
//
// A must be a concrete type. Adapt looks up the dynamic type of its argument,
// which is never an interface, so Register panics when A is one.
func Register[A, T any](r *Registry[T], fn func(A) T) {
	kind := reflect.TypeOf((*A)(nil)).Elem()
	if kind.Kind() == reflect.Interface {
		panic(fmt.Sprintf("adapter: Register requires a concrete adaptee type, got interface %s", kind))
	}
	r.mu.Lock()
	r.factories[kind] = func(v any) T { return fn(v.(A)) }
	r.mu.Unlock()
	r.logger.Debug("adapter registered", "adaptee", kind.String(), "target", reflect.TypeOf((*T)(nil)).Elem().String())
}

// Adapt wraps adaptee in the adapter registered for its type. A nil adaptee
// returns capability.ErrConstruction. An unregistered type returns an
// *UnsupportedError, or the fallback adapter when one is configured.
func (r *Registry[T]) Adapt(adaptee any) (T, error) {
	var zero T
	if capability.IsNil(adaptee) {
		return zero, fmt.Errorf("adapter: no adaptee: %w", capability.ErrConstruction)
	}

	kind := reflect.TypeOf(adaptee)
	r.mu.RLock()
	fn, ok := r.factories[kind]
	fallback := r.fallback
	r.mu.RUnlock()

	if ok {
		return fn(adaptee), nil
	}
	if fallback != nil {
		r.logger.Debug("adapter fallback", "adaptee", kind.String())
		return fallback(adaptee), nil
	}
	return zero, &UnsupportedError{Kind: kind.String()}
}

// Supports reports whether an adapter is registered for adaptee's type.
func (r *Registry[T]) Supports(adaptee any) bool {
	kind := reflect.TypeOf(adaptee)
	if kind == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[kind]
	return ok
}

// Kinds returns the sorted type names of every registered adaptee.
func (r *Registry[T]) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k.String())
	}
	sort.Strings(kinds)
	return kinds
}
