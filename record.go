package record

// Record is an instance of a record Type. Its values are bound once by the
// constructor and never change; every assignment attempt fails with ErrImmutable.
// Records are safe for concurrent reads.
type Record struct {
	typ        *Type
	values     []any // aligned with typ.fields
	provenance []FieldProvenance
}

// Type returns the record's type.
func (r *Record) Type() *Type {
	return r.typ
}

// Get returns the value bound to the named field.
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.typ.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// MustGet is like Get but panics with an ErrUnknownField error if the field does not exist.
func (r *Record) MustGet(name string) any {
	v, ok := r.Get(name)
	if !ok {
		panic(newFieldError(r.typ.name, name, ErrCodeUnknownField, "%s declares no such field", r.typ.name))
	}
	return v
}

// Values returns a copy of the bound values keyed by field name.
// The copy can be passed back to New to construct an equal record.
func (r *Record) Values() Args {
	out := make(Args, len(r.values))
	for i, s := range r.typ.fields {
		out[s.Name] = r.values[i]
	}
	return out
}

// Set always fails: record fields are read-only once constructed.
// The bound value is left unchanged.
func (r *Record) Set(name string, _ any) error {
	if _, ok := r.typ.index[name]; !ok {
		return newFieldError(r.typ.name, name, ErrCodeImmutable, "%s declares no such field and records cannot be extended", r.typ.name)
	}
	return newFieldError(r.typ.name, name, ErrCodeImmutable, "cannot assign to a field after construction")
}

// With returns a new record of the same type with some values replaced.
// The replacement goes through the full constructor; r is not modified.
func (r *Record) With(changes Args) (*Record, error) {
	args := r.Values()
	for name, v := range changes {
		args[name] = v
	}
	return r.typ.New(args)
}
