package capability

import "reflect"

// IsNil reports whether v is nil or a typed nil (pointer, func, map, slice,
// chan or interface). Binding such a value would leave a handle that faults
// on first use.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
