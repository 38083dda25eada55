package capability

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// VariantEntry records a concrete type that implements a capability.
type VariantEntry struct {
	// Name is the variant's display name (e.g., "dog", "vip").
	Name string

	// Impl is the reflect.Type of the concrete type implementing the capability.
	Impl reflect.Type
}

// Registry manages capability contracts and the variants known to satisfy them.
// Registration is descriptive: dispatch never consults the registry, so adding a
// variant here changes listings only. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	contracts map[string]Contract
	variants  map[string][]VariantEntry
}

// NewRegistry creates a new empty capability registry.
func NewRegistry() *Registry {
	return &Registry{
		contracts: make(map[string]Contract),
		variants:  make(map[string][]VariantEntry),
	}
}

// RegisterContract adds a capability contract to the registry.
// Returns an error if a contract with the same name already exists
// but has a different InterfaceType.
func (r *Registry) RegisterContract(c Contract) error {
	if c.Name == "" {
		return fmt.Errorf("capability: contract name is required")
	}
	if c.InterfaceType == nil || c.InterfaceType.Kind() != reflect.Interface {
		return fmt.Errorf("capability: contract %q must name an interface type", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.contracts[c.Name]; ok {
		if existing.InterfaceType != c.InterfaceType {
			return fmt.Errorf("capability: contract %q already registered with different interface type (existing: %v, new: %v)",
				c.Name, existing.InterfaceType, c.InterfaceType)
		}
		return nil
	}

	if len(c.RequiredMethods) == 0 {
		c.RequiredMethods = methodSignatures(c.InterfaceType)
	}
	r.contracts[c.Name] = c
	return nil
}

// RegisterVariant records that impl satisfies the named capability.
// The capability must be registered and impl must structurally implement it;
// otherwise a *MismatchError is returned and nothing is recorded.
// Registering the same variant name twice replaces the earlier entry.
func (r *Registry) RegisterVariant(capabilityName, variantName string, impl reflect.Type) error {
	if variantName == "" {
		return fmt.Errorf("capability: variant name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contracts[capabilityName]
	if !ok {
		return fmt.Errorf("capability: %q is not a registered capability", capabilityName)
	}
	if !c.Satisfied(impl) {
		return &MismatchError{
			Capability: capabilityName,
			Variant:    typeName(impl),
			Missing:    c.Missing(impl),
		}
	}

	entries := r.variants[capabilityName]
	for i := range entries {
		if entries[i].Name == variantName {
			entries[i].Impl = impl
			return nil
		}
	}
	r.variants[capabilityName] = append(entries, VariantEntry{Name: variantName, Impl: impl})
	return nil
}

// Check reports whether v satisfies the named capability. It returns a
// *MismatchError when it does not, and a plain error for unknown capabilities.
func (r *Registry) Check(capabilityName string, v any) error {
	c, ok := r.Lookup(capabilityName)
	if !ok {
		return fmt.Errorf("capability: %q is not a registered capability", capabilityName)
	}
	impl := reflect.TypeOf(v)
	if !c.Satisfied(impl) {
		return &MismatchError{
			Capability: capabilityName,
			Variant:    typeName(impl),
			Missing:    c.Missing(impl),
		}
	}
	return nil
}

// ListCapabilities returns a sorted list of all registered capability names.
func (r *Registry) ListCapabilities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.contracts))
	for name := range r.contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasVariant returns true if at least one variant is registered for the capability.
func (r *Registry) HasVariant(capabilityName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.variants[capabilityName]) > 0
}

// Variants returns the variants registered for a capability, sorted by name.
// Returns nil if none are registered.
func (r *Registry) Variants(capabilityName string) []VariantEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.variants[capabilityName]
	if len(entries) == 0 {
		return nil
	}

	result := make([]VariantEntry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Lookup returns the contract for a capability name.
// Returns false if the capability is not registered.
func (r *Registry) Lookup(capabilityName string) (*Contract, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contracts[capabilityName]
	if !ok {
		return nil, false
	}
	return &c, true
}

// NameOf returns the name of the contract whose interface is t.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, c := range r.contracts {
		if c.InterfaceType == t {
			return name, true
		}
	}
	return "", false
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// Populate registers every contract, then records each variant under every
// contract it structurally satisfies. Variants are keyed by display name.
func (r *Registry) Populate(contracts []Contract, variants map[string]any) error {
	for _, c := range contracts {
		if err := r.RegisterContract(c); err != nil {
			return err
		}
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		impl := reflect.TypeOf(variants[name])
		for _, c := range contracts {
			if !c.Satisfied(impl) {
				continue
			}
			if err := r.RegisterVariant(c.Name, name, impl); err != nil {
				return err
			}
		}
	}
	return nil
}
