package record

import (
	"context"
	"reflect"
)

// Args holds keyword arguments for a record constructor, keyed by field name.
type Args map[string]any

// Source provides constructor arguments from a backend (env vars, files).
// Keys are matched to field names case-insensitively.
type Source interface {
	// Load returns arguments as a flat map. Missing optional sources should return empty map.
	Load(ctx context.Context) (map[string]any, error)

	// Name identifies the source in provenance (e.g., "env", "file:person.yaml").
	Name() string
}

// Declared field types for the common scalars.
var (
	String = reflect.TypeOf("")
	Int    = reflect.TypeOf(0)
	Int64  = reflect.TypeOf(int64(0))
	Float  = reflect.TypeOf(0.0)
	Bool   = reflect.TypeOf(false)
)

// TypeOf returns the declared type for T. Use it for scalars not covered by
// String, Int, Int64, Float and Bool, or for interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// conforms reports whether v satisfies the declared type t.
// Concrete types require an exact match; interface types require Implements.
// A nil value never conforms.
func conforms(v any, t reflect.Type) bool {
	if v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if t.Kind() == reflect.Interface {
		return vt.Implements(t)
	}
	return vt == t
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
