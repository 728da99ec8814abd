// Package namespace provides the binding environment that completion and
// evaluation run against: a mapping from identifier to arbitrary Go value,
// plus the reflection surface (member enumeration, dotted-chain resolution,
// callability) used to inspect those values.
package namespace

import (
	"errors"
	"reflect"
	"sort"
)

// BuiltinsName is the reserved binding through which the builtins table is
// reachable from a namespace. It is excluded from all completion output.
const BuiltinsName = "builtins"

// ErrInvalidNamespace is returned when a namespace is constructed from a
// value that is not a string-keyed map.
var ErrInvalidNamespace = errors.New("namespace must be a string-keyed map")

// Namespace represents a scope of name-to-value bindings. The zero value is
// not usable; construct with New or FromValue.
type Namespace struct {
	store map[string]any
}

// New creates a new empty namespace.
func New() *Namespace {
	return &Namespace{
		store: make(map[string]any),
	}
}

// FromMap creates a namespace backed by the given map. The map is shared,
// not copied, so later mutations by the caller are visible to subsequent
// lookups.
func FromMap(m map[string]any) *Namespace {
	if m == nil {
		m = make(map[string]any)
	}
	return &Namespace{store: m}
}

// FromValue creates a namespace from an arbitrary value. The value must be a
// string-keyed map; anything else fails with ErrInvalidNamespace. A nil value
// yields an empty namespace. Maps other than map[string]any are snapshotted.
func FromValue(v any) (*Namespace, error) {
	if v == nil {
		return New(), nil
	}

	if m, ok := v.(map[string]any); ok {
		return FromMap(m), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, ErrInvalidNamespace
	}

	ns := New()
	iter := rv.MapRange()
	for iter.Next() {
		ns.store[iter.Key().String()] = iter.Value().Interface()
	}
	return ns, nil
}

// Get retrieves a value from the namespace by name.
func (ns *Namespace) Get(name string) (any, bool) {
	value, ok := ns.store[name]
	return value, ok
}

// Set assigns a value to a name, creating the binding if needed.
func (ns *Namespace) Set(name string, value any) {
	ns.store[name] = value
}

// Delete removes a binding. It returns true if the binding existed.
func (ns *Namespace) Delete(name string) bool {
	if _, ok := ns.store[name]; ok {
		delete(ns.store, name)
		return true
	}
	return false
}

// Has checks whether a name is bound.
func (ns *Namespace) Has(name string) bool {
	_, ok := ns.store[name]
	return ok
}

// Len returns the number of bindings.
func (ns *Namespace) Len() int {
	return len(ns.store)
}

// Keys returns all bound names in sorted order.
func (ns *Namespace) Keys() []string {
	keys := make([]string, 0, len(ns.store))
	for k := range ns.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone creates a shallow copy of the namespace.
func (ns *Namespace) Clone() *Namespace {
	clone := &Namespace{
		store: make(map[string]any, len(ns.store)),
	}
	for k, v := range ns.store {
		clone.store[k] = v
	}
	return clone
}

var defaultNamespace = New()

// Default returns the process-wide default namespace. Completers constructed
// without an explicit namespace consult it at each completion cycle, so
// bindings added after construction are still visible.
func Default() *Namespace {
	return defaultNamespace
}
