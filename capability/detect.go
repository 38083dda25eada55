package capability

import (
	"reflect"
	"sort"
)

// Detect returns the sorted names of every capability registered in reg that
// v structurally satisfies. A nil value satisfies nothing.
func Detect(reg *Registry, v any) []string {
	impl := reflect.TypeOf(v)
	if impl == nil {
		return []string{}
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()

	result := make([]string, 0, len(reg.contracts))
	for name, c := range reg.contracts {
		if c.Satisfied(impl) {
			result = append(result, name)
		}
	}
	sort.Strings(result)
	return result
}

// DetectAll returns, for each value, the capabilities it satisfies, keyed by
// the value's type name. Values of the same type collapse into one entry.
func DetectAll(reg *Registry, vs ...any) map[string][]string {
	out := make(map[string][]string, len(vs))
	for _, v := range vs {
		out[typeName(reflect.TypeOf(v))] = Detect(reg, v)
	}
	return out
}
