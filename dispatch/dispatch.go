// Package dispatch binds values to capability interfaces and invokes their
// operations. The conformance check happens once, in Bind; every later call
// goes straight to the variant's own method through Go's interface dispatch.
package dispatch

import (
	"fmt"
	"reflect"

	"github.com/ainaplanass/exam/capability"
)

// Handle is a capability-typed reference to a bound value. Obtain one from
// Bind, BindAll, From or BindAs; the zero Handle is not usable.
type Handle[C any] struct {
	capability string
	variant    string
	impl       C
}

// Value returns the bound value as its capability interface.
func (h Handle[C]) Value() C { return h.impl }

// Capability returns the capability name the handle was bound under.
func (h Handle[C]) Capability() string { return h.capability }

// Variant returns the bound value's type name. It is informational only.
func (h Handle[C]) Variant() string { return h.variant }

// Bind checks that v implements C and returns a handle to it. A value that
// does not conform yields a *capability.MismatchError; a nil value yields
// capability.ErrConstruction.
func Bind[C any](v any) (Handle[C], error) {
	name := capabilityName[C]()
	if capability.IsNil(v) {
		return Handle[C]{}, fmt.Errorf("dispatch: bind %s: nil value: %w", name, capability.ErrConstruction)
	}
	impl, ok := v.(C)
	if !ok {
		t := reflect.TypeOf(v)
		return Handle[C]{}, &capability.MismatchError{
			Capability: name,
			Variant:    t.String(),
			Missing:    capability.Contract{InterfaceType: reflect.TypeOf((*C)(nil)).Elem()}.Missing(t),
		}
	}
	return Handle[C]{capability: name, variant: variantName(v), impl: impl}, nil
}

// MustBind is like Bind but panics on error. Use it only for values whose
// conformance is already guaranteed, such as package-level fixtures.
func MustBind[C any](v any) Handle[C] {
	h, err := Bind[C](v)
	if err != nil {
		panic(err)
	}
	return h
}

// BindAll binds every value to C, stopping at the first one that does not conform.
func BindAll[C any](vs ...any) ([]Handle[C], error) {
	hs := make([]Handle[C], 0, len(vs))
	for i, v := range vs {
		h, err := Bind[C](v)
		if err != nil {
			return nil, fmt.Errorf("dispatch: element %d: %w", i, err)
		}
		hs = append(hs, h)
	}
	return hs, nil
}

// From wraps values the compiler already knows implement C. Nil entries are skipped.
func From[C any](vs ...C) []Handle[C] {
	name := capabilityName[C]()
	hs := make([]Handle[C], 0, len(vs))
	for _, v := range vs {
		if capability.IsNil(v) {
			continue
		}
		hs = append(hs, Handle[C]{capability: name, variant: variantName(v), impl: v})
	}
	return hs
}

// Named wraps v, which the compiler already knows implements C, as a handle
// for the capability called capabilityName. A nil v yields
// capability.ErrConstruction.
func Named[C any](capabilityName string, v C) (Handle[C], error) {
	if capability.IsNil(v) {
		return Handle[C]{}, fmt.Errorf("dispatch: %s: nil value: %w", capabilityName, capability.ErrConstruction)
	}
	return Handle[C]{capability: capabilityName, variant: variantName(v), impl: v}, nil
}

// Invoke runs op with arg against the handle's value. op is usually a method
// expression such as payment.Method.Process.
func Invoke[C, A, R any](h Handle[C], op func(C, A) R, arg A) R {
	return op(h.impl, arg)
}

// Call runs a zero-argument operation against the handle's value.
func Call[C, R any](h Handle[C], op func(C) R) R {
	return op(h.impl)
}

// Each runs op against every handle and collects the results in order.
func Each[C, R any](hs []Handle[C], op func(C) R) []R {
	out := make([]R, len(hs))
	for i, h := range hs {
		out[i] = op(h.impl)
	}
	return out
}

// EachWith runs op with the same arg against every handle.
func EachWith[C, A, R any](hs []Handle[C], op func(C, A) R, arg A) []R {
	out := make([]R, len(hs))
	for i, h := range hs {
		out[i] = op(h.impl, arg)
	}
	return out
}

func capabilityName[C any]() string {
	return reflect.TypeOf((*C)(nil)).Elem().String()
}

func variantName(v any) string {
	return reflect.TypeOf(v).String()
}
