package capability

import (
	"fmt"
	"reflect"
)

// Contract defines a capability that variants can provide.
// A contract names the Go interface that variants must implement
// and records the method signatures for validation and listing.
type Contract struct {
	// Name is the capability identifier (e.g., "sounder", "discount").
	Name string

	// Description is a human-readable explanation of what this capability provides.
	Description string

	// InterfaceType is the reflect.Type of the Go interface that variants must implement.
	InterfaceType reflect.Type

	// RequiredMethods lists the method signatures derived from InterfaceType.
	RequiredMethods []MethodSignature
}

// MethodSignature describes a single method on a capability interface.
type MethodSignature struct {
	// Name is the method name.
	Name string

	// Params lists the parameter type names (excluding the receiver).
	Params []string

	// Returns lists the return type names.
	Returns []string
}

// String renders the signature as Go source would, e.g. "Print(string) string".
func (m MethodSignature) String() string {
	s := m.Name + "("
	for i, p := range m.Params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	s += ")"
	switch len(m.Returns) {
	case 0:
	case 1:
		s += " " + m.Returns[0]
	default:
		s += " ("
		for i, r := range m.Returns {
			if i > 0 {
				s += ", "
			}
			s += r
		}
		s += ")"
	}
	return s
}

// ContractFor builds a Contract for the interface type C. The method set is
// read from C itself so the contract can never drift from the interface.
// C must be an interface type; anything else is a programming error.
func ContractFor[C any](name, description string) Contract {
	t := reflect.TypeOf((*C)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("capability: contract %q: %v is not an interface type", name, t))
	}
	return Contract{
		Name:            name,
		Description:     description,
		InterfaceType:   t,
		RequiredMethods: methodSignatures(t),
	}
}

// Satisfied reports whether impl provides every method of the contract.
func (c Contract) Satisfied(impl reflect.Type) bool {
	return impl != nil && c.InterfaceType != nil && impl.Implements(c.InterfaceType)
}

// Missing returns the contract methods impl lacks, in interface order.
func (c Contract) Missing(impl reflect.Type) []string {
	if c.InterfaceType == nil {
		return nil
	}
	var missing []string
	for i := 0; i < c.InterfaceType.NumMethod(); i++ {
		want := c.InterfaceType.Method(i)
		if impl == nil {
			missing = append(missing, want.Name)
			continue
		}
		got, ok := impl.MethodByName(want.Name)
		if !ok || !sameSignature(got.Type, want.Type, impl.Kind() != reflect.Interface) {
			missing = append(missing, want.Name)
		}
	}
	return missing
}

func methodSignatures(t reflect.Type) []MethodSignature {
	sigs := make([]MethodSignature, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		sig := MethodSignature{Name: m.Name}
		for j := 0; j < m.Type.NumIn(); j++ {
			sig.Params = append(sig.Params, m.Type.In(j).String())
		}
		for j := 0; j < m.Type.NumOut(); j++ {
			sig.Returns = append(sig.Returns, m.Type.Out(j).String())
		}
		sigs = append(sigs, sig)
	}
	return sigs
}

// sameSignature compares a concrete method type against an interface method
// type. Concrete method types carry the receiver as their first input.
func sameSignature(got, want reflect.Type, hasReceiver bool) bool {
	offset := 0
	if hasReceiver {
		offset = 1
	}
	if got.NumIn()-offset != want.NumIn() || got.NumOut() != want.NumOut() {
		return false
	}
	for i := 0; i < want.NumIn(); i++ {
		if got.In(i+offset) != want.In(i) {
			return false
		}
	}
	for i := 0; i < want.NumOut(); i++ {
		if got.Out(i) != want.Out(i) {
			return false
		}
	}
	return got.IsVariadic() == want.IsVariadic()
}
