package namespace

import (
	"fmt"
	"reflect"
	"sort"
)

// Members enumerates the introspectable member names of a value: keys of
// string-keyed maps, exported struct fields (including fields promoted from
// embedded structs), and exported methods of the pointer method set. The
// builtins sentinel is excluded. Duplicate names across groups are kept.
func Members(v any) []string {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}

	var names []string

	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			if key == BuiltinsName {
				continue
			}
			keys = append(keys, key)
		}
		sort.Strings(keys)
		names = append(names, keys...)
	}

	t := rv.Type()
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() == reflect.Struct {
		for _, field := range reflect.VisibleFields(st) {
			if field.PkgPath != "" {
				continue
			}
			names = append(names, field.Name)
		}
	}

	// Enumerate through the pointer type so methods with pointer receivers
	// are included regardless of how the value was bound.
	mt := t
	if mt.Kind() != reflect.Pointer && mt.Kind() != reflect.Interface {
		mt = reflect.PointerTo(t)
	}
	for i := 0; i < mt.NumMethod(); i++ {
		names = append(names, mt.Method(i).Name)
	}

	return names
}

// Callable reports whether a value can be invoked.
func Callable(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

// Member fetches a single named member from a value: a map entry, an
// exported struct field, or a bound method value. An advertised member may
// still be unreadable (for example a nil pointer dereference); that is
// reported as an error, never a panic.
func Member(v any, name string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("reading member %q: %v", name, r)
		}
	}()

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("cannot access member %q of nil value", name)
	}

	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if mv.IsValid() {
			return mv.Interface(), nil
		}
	}

	sv := rv
	if sv.Kind() == reflect.Pointer {
		if sv.IsNil() {
			return nil, fmt.Errorf("cannot access member %q of nil %s", name, sv.Type())
		}
		sv = sv.Elem()
	}
	if sv.Kind() == reflect.Struct {
		if field, ok := sv.Type().FieldByName(name); ok && field.PkgPath == "" {
			return sv.FieldByIndex(field.Index).Interface(), nil
		}
	}

	if method := rv.MethodByName(name); method.IsValid() {
		return method.Interface(), nil
	}
	if rv.Kind() != reflect.Pointer && rv.CanInterface() {
		// Pointer-receiver methods are not in the value's method set, so
		// retry through an addressable copy.
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		if method := pv.MethodByName(name); method.IsValid() {
			return method.Interface(), nil
		}
	}

	return nil, fmt.Errorf("value of type %s has no member %q", rv.Type(), name)
}
