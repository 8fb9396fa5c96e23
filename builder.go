package record

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/Azhovan/record/internal/normalize"
)

// defineMu serializes type definitions. Field lists are computed once per
// type and cached; a finished Type is read-only.
var defineMu sync.Mutex

// Builder collects the declaration of one record type level: its parents,
// its own type annotations and its own field descriptors.
// Call Build to validate the declaration and produce the Type.
type Builder struct {
	name        string
	parents     []*Type
	order       []string // first-mention order of names at this level
	annotations map[string]reflect.Type
	descriptors map[string]*Field
	problems    []string
	built       bool
}

// NewType starts the declaration of a record type.
func NewType(name string) *Builder {
	return &Builder{
		name:        name,
		annotations: make(map[string]reflect.Type),
		descriptors: make(map[string]*Field),
	}
}

// Extends lists parent types, base-first. Fields of later parents override
// same-named fields of earlier ones without moving them.
func (b *Builder) Extends(parents ...*Type) *Builder {
	for _, p := range parents {
		if p == nil {
			b.problems = append(b.problems, "parent type is nil")
			continue
		}
		b.parents = append(b.parents, p)
	}
	return b
}

// Annotate declares the type of a field at this level.
// It must be paired with Assign for the same name.
func (b *Builder) Annotate(name string, t reflect.Type) *Builder {
	b.mention(name)
	if _, dup := b.annotations[name]; dup {
		b.problems = append(b.problems, fmt.Sprintf("field %q is annotated twice", name))
		return b
	}
	if t == nil {
		b.problems = append(b.problems, fmt.Sprintf("field %q is annotated with a nil type", name))
	}
	b.annotations[name] = t
	return b
}

// Assign attaches the descriptor of a field at this level.
// It must be paired with Annotate for the same name.
func (b *Builder) Assign(name string, f *Field) *Builder {
	b.mention(name)
	if _, dup := b.descriptors[name]; dup {
		b.problems = append(b.problems, fmt.Sprintf("field %q is assigned twice", name))
		return b
	}
	if f == nil {
		b.problems = append(b.problems, fmt.Sprintf("field %q is assigned a nil descriptor", name))
	}
	b.descriptors[name] = f
	return b
}

// Field declares a field's type and descriptor together.
func (b *Builder) Field(name string, t reflect.Type, f *Field) *Builder {
	return b.Annotate(name, t).Assign(name, f)
}

func (b *Builder) mention(name string) {
	_, annotated := b.annotations[name]
	_, described := b.descriptors[name]
	if !annotated && !described {
		b.order = append(b.order, name)
	}
}

// Build validates the declaration and returns the finished Type.
// Problems are reported together in a *DefinitionError.
// A Builder can be built only once.
func (b *Builder) Build() (*Type, error) {
	defineMu.Lock()
	defer defineMu.Unlock()

	if b.built {
		return nil, &DefinitionError{Type: b.name, Problems: []string{"type is already built"}}
	}

	problems := append([]string(nil), b.problems...)
	if !normalize.IsIdentifier(b.name) {
		problems = append(problems, fmt.Sprintf("type name %q is not an identifier", b.name))
	}

	for _, name := range b.order {
		if !normalize.IsIdentifier(name) {
			problems = append(problems, fmt.Sprintf("field name %q is not an identifier", name))
		}
		_, annotated := b.annotations[name]
		_, described := b.descriptors[name]
		switch {
		case !described:
			problems = append(problems, fmt.Sprintf("field %q is annotated but has no descriptor", name))
		case !annotated:
			problems = append(problems, fmt.Sprintf("field %q has a descriptor but no type annotation", name))
		}
	}

	if len(problems) > 0 {
		return nil, &DefinitionError{Type: b.name, Problems: problems}
	}

	fields, index := inheritFields(b.parents)
	for _, name := range b.order {
		spec := Spec{
			Name:       name,
			Type:       b.annotations[name],
			Descriptor: b.descriptors[name],
			Owner:      b.name,
		}
		if i, ok := index[name]; ok {
			fields[i] = spec
			continue
		}
		index[name] = len(fields)
		fields = append(fields, spec)
	}

	b.built = true
	return &Type{
		name:    b.name,
		parents: append([]*Type(nil), b.parents...),
		fields:  fields,
		index:   index,
	}, nil
}

// MustBuild is like Build but panics on error. It suits package-level
// type declarations.
func MustBuild(b *Builder) *Type {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

// inheritFields merges the cached field lists of parents, base-first.
// A name seen again keeps its first position and takes the later spec.
func inheritFields(parents []*Type) ([]Spec, map[string]int) {
	var fields []Spec
	index := make(map[string]int)
	for _, p := range parents {
		for _, s := range p.fields {
			if i, ok := index[s.Name]; ok {
				fields[i] = s
				continue
			}
			index[s.Name] = len(fields)
			fields = append(fields, s)
		}
	}
	return fields, index
}
