package record

// Field is a field descriptor: a label and an optional precondition.
// It knows neither its name nor its type; the declaring Builder supplies
// both. A Field is immutable and may be shared by a type and its subtypes.
type Field struct {
	label        string
	precondition Predicate
	secret       bool
}

// FieldOption configures a Field using the functional options pattern.
type FieldOption func(*Field)

// WithPrecondition sets the predicate every value of the field must satisfy.
func WithPrecondition(p Predicate) FieldOption {
	return func(f *Field) {
		f.precondition = p
	}
}

// Secret marks the field as secret. Rendering shows "***redacted***" instead of the value.
func Secret() FieldOption {
	return func(f *Field) {
		f.secret = true
	}
}

// NewField creates a field descriptor with the given label.
func NewField(label string, opts ...FieldOption) *Field {
	f := &Field{label: label}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Label returns the human-readable label.
func (f *Field) Label() string {
	return f.label
}

// Precondition returns the field's predicate. A field declared without one
// returns a predicate that accepts every value.
func (f *Field) Precondition() Predicate {
	if f.precondition == nil {
		return always
	}
	return f.precondition
}

// HasPrecondition reports whether a precondition was declared.
func (f *Field) HasPrecondition() bool {
	return f.precondition != nil
}

// IsSecret reports whether the field is redacted when rendered.
func (f *Field) IsSecret() bool {
	return f.secret
}
