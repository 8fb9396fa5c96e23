package record

import (
	"fmt"
)

// FieldAccessor is a typed, read-only accessor for one field of a record type.
// Obtain it once per type with Accessor and reuse it for every record.
type FieldAccessor[T any] struct {
	owner *Type
	name  string
}

// Accessor returns a read-only accessor for the named field of t.
// It fails with ErrConfiguration if t has no such field or if the field is
// not declared as T.
func Accessor[T any](t *Type, name string) (*FieldAccessor[T], error) {
	s, ok := t.Field(name)
	if !ok {
		return nil, &DefinitionError{
			Type:     t.name,
			Problems: []string{fmt.Sprintf("no field %q to access", name)},
		}
	}
	if want := TypeOf[T](); s.Type != want {
		return nil, &DefinitionError{
			Type:     t.name,
			Problems: []string{fmt.Sprintf("field %q is declared as %s, not %s", name, s.Type, want)},
		}
	}
	return &FieldAccessor[T]{owner: t, name: name}, nil
}

// MustAccessor is like Accessor but panics on error.
func MustAccessor[T any](t *Type, name string) *FieldAccessor[T] {
	a, err := Accessor[T](t, name)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the accessed field's name.
func (a *FieldAccessor[T]) Name() string {
	return a.name
}

// Get returns the field's value. r must be of the accessor's type or a
// subtype that did not redeclare the field with another type.
func (a *FieldAccessor[T]) Get(r *Record) (T, error) {
	var zero T
	if !r.typ.IsA(a.owner) {
		return zero, newFieldError(r.typ.name, a.name, ErrCodeUnknownField,
			"%s does not derive from %s", r.typ.name, a.owner.name)
	}
	v, _ := r.Get(a.name)
	tv, ok := v.(T)
	if !ok {
		return zero, newFieldError(r.typ.name, a.name, ErrCodeInvalidType,
			"field holds %s, accessor reads %s", typeName(v), TypeOf[T]())
	}
	return tv, nil
}

// MustGet is like Get but panics on error.
func (a *FieldAccessor[T]) MustGet(r *Record) T {
	v, err := a.Get(r)
	if err != nil {
		panic(err)
	}
	return v
}

// Set always fails with ErrImmutable.
func (a *FieldAccessor[T]) Set(r *Record, v T) error {
	return r.Set(a.name, v)
}

// Value returns the named field of r as a T.
func Value[T any](r *Record, name string) (T, error) {
	var zero T
	v, ok := r.Get(name)
	if !ok {
		return zero, newFieldError(r.typ.name, name, ErrCodeUnknownField, "%s declares no such field", r.typ.name)
	}
	tv, ok := v.(T)
	if !ok {
		return zero, newFieldError(r.typ.name, name, ErrCodeInvalidType,
			"field holds %s, not %s", typeName(v), TypeOf[T]())
	}
	return tv, nil
}
