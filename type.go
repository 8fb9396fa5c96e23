package record

import (
	"reflect"
	"sort"
)

// Spec is the resolved view of one field on a record type.
type Spec struct {
	Name       string       // Field name (e.g., "age")
	Type       reflect.Type // Declared type
	Descriptor *Field       // Label and precondition
	Owner      string       // Name of the type whose declaration is in effect
}

// Type is a finished record type. It is immutable and safe for concurrent use.
type Type struct {
	name    string
	parents []*Type
	fields  []Spec
	index   map[string]int
}

// Name returns the type name used when rendering records.
func (t *Type) Name() string {
	return t.name
}

// Fields returns the field specifications in rendering order:
// inherited fields first, then fields this type introduced.
func (t *Type) Fields() []Spec {
	return append([]Spec(nil), t.fields...)
}

// FieldNames returns the field names in rendering order.
func (t *Type) FieldNames() []string {
	names := make([]string, len(t.fields))
	for i, s := range t.fields {
		names[i] = s.Name
	}
	return names
}

// Field returns the specification of the named field.
func (t *Type) Field(name string) (Spec, bool) {
	i, ok := t.index[name]
	if !ok {
		return Spec{}, false
	}
	return t.fields[i], true
}

// Parents returns the direct parents in declaration order.
func (t *Type) Parents() []*Type {
	return append([]*Type(nil), t.parents...)
}

// Ancestors returns every ancestor once, base-most first.
func (t *Type) Ancestors() []*Type {
	var out []*Type
	seen := make(map[*Type]bool)
	var walk func(*Type)
	walk = func(n *Type) {
		for _, p := range n.parents {
			if seen[p] {
				continue
			}
			walk(p)
			seen[p] = true
			out = append(out, p)
		}
	}
	walk(t)
	return out
}

// IsA reports whether t is other or derives from it.
func (t *Type) IsA(other *Type) bool {
	if t == other {
		return true
	}
	for _, p := range t.parents {
		if p.IsA(other) {
			return true
		}
	}
	return false
}

// New constructs a record from keyword arguments. Checks run in order:
// every field present, no extra arguments, declared types, preconditions.
// Nothing is bound unless every check passes.
func (t *Type) New(args Args) (*Record, error) {
	return t.construct(args, nil)
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(args Args) *Record {
	r, err := t.New(args)
	if err != nil {
		panic(err)
	}
	return r
}

func (t *Type) construct(args Args, prov []FieldProvenance) (*Record, error) {
	for _, s := range t.fields {
		if _, ok := args[s.Name]; !ok {
			return nil, newFieldError(t.name, s.Name, ErrCodeMissing, "required argument not provided")
		}
	}

	if len(args) != len(t.fields) {
		var extra []string
		for name := range args {
			if _, ok := t.index[name]; !ok {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		return nil, newFieldError(t.name, extra[0], ErrCodeUnexpected, "%s declares no such field", t.name)
	}

	if err := t.validateFields(args); err != nil {
		return nil, err
	}

	values := make([]any, len(t.fields))
	for i, s := range t.fields {
		values[i] = args[s.Name]
	}

	return &Record{typ: t, values: values, provenance: prov}, nil
}
