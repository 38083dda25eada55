package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ainaplanass/exam/capability"
)

const tracerName = "github.com/ainaplanass/exam/dispatch"

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for binding events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics records binding and invocation counters into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer sets the tracer used by Observe. The default is the global otel tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// Engine is an instrumented front for Bind and Invoke. It binds values under
// registered capability names and records what it binds and invokes. It never
// changes which implementation runs or what it returns.
type Engine struct {
	registry *capability.Registry
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// NewEngine creates an Engine over reg. A nil registry gets a fresh empty one.
func NewEngine(reg *capability.Registry, opts ...Option) *Engine {
	if reg == nil {
		reg = capability.NewRegistry()
	}
	e := &Engine{
		registry: reg,
		logger:   slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Registry returns the capability registry the engine binds against.
func (e *Engine) Registry() *capability.Registry { return e.registry }

// Metrics returns the engine's metrics, or nil when none were configured.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// BindAs binds v to the registered capability named capabilityName, whose
// interface must be C.
func BindAs[C any](e *Engine, capabilityName string, v any) (Handle[C], error) {
	c, ok := e.registry.Lookup(capabilityName)
	if !ok {
		return Handle[C]{}, fmt.Errorf("dispatch: %q is not a registered capability", capabilityName)
	}
	if want := reflect.TypeOf((*C)(nil)).Elem(); c.InterfaceType != want {
		return Handle[C]{}, fmt.Errorf("dispatch: capability %q is %v, not %v", capabilityName, c.InterfaceType, want)
	}

	variant := "<nil>"
	if t := reflect.TypeOf(v); t != nil {
		variant = t.String()
	}

	h, err := Bind[C](v)
	if err != nil {
		var mismatch *capability.MismatchError
		if errors.As(err, &mismatch) {
			mismatch.Capability = capabilityName
		}
		e.metrics.bound(capabilityName, variant, "rejected")
		e.logger.Warn("capability binding rejected", "capability", capabilityName, "variant", variant, "error", err)
		return Handle[C]{}, err
	}

	h.capability = capabilityName
	e.metrics.bound(capabilityName, variant, "bound")
	e.logger.Debug("capability bound", "capability", capabilityName, "variant", variant)
	return h, nil
}

// Observe invokes op on the handle inside a span and counts the invocation.
func Observe[C, A, R any](ctx context.Context, e *Engine, h Handle[C], operation string, op func(C, A) R, arg A) R {
	_, span := e.tracer.Start(ctx, "dispatch."+h.capability+"."+operation,
		trace.WithAttributes(
			attribute.String("capability.name", h.capability),
			attribute.String("capability.variant", h.variant),
		))
	defer span.End()

	e.metrics.invoked(h.capability, h.variant, operation)
	return op(h.impl, arg)
}

// ObserveCall is Observe for zero-argument operations.
func ObserveCall[C, R any](ctx context.Context, e *Engine, h Handle[C], operation string, op func(C) R) R {
	return Observe(ctx, e, h, operation, func(c C, _ struct{}) R { return op(c) }, struct{}{})
}
