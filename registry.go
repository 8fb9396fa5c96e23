package record

import (
	"sort"
	"sync"
)

var typeRegistry sync.Map // name → *Type

// Register makes t discoverable by name through Lookup.
// Registering the same Type twice is a no-op; registering a different Type
// under a taken name fails with ErrConfiguration.
// Thread-safe.
func Register(t *Type) error {
	if t == nil {
		return &DefinitionError{Type: "<nil>", Problems: []string{"cannot register a nil type"}}
	}

	existing, loaded := typeRegistry.LoadOrStore(t.name, t)
	if loaded && existing.(*Type) != t {
		return &DefinitionError{Type: t.name, Problems: []string{"another type is already registered under this name"}}
	}
	return nil
}

// Lookup returns the registered type with the given name.
// Thread-safe.
func Lookup(name string) (*Type, bool) {
	value, ok := typeRegistry.Load(name)
	if !ok {
		return nil, false
	}
	t, ok := value.(*Type)
	return t, ok
}

// Registered returns the names of all registered types, sorted.
func Registered() []string {
	var names []string
	typeRegistry.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}

// Unregister removes t from the registry if it is registered under its name.
func Unregister(t *Type) {
	if t != nil {
		typeRegistry.CompareAndDelete(t.name, t)
	}
}
