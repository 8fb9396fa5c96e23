package record

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/Azhovan/record/internal/normalize"
)

// tagConfig holds parsed directives from a struct field's `record` tag.
type tagConfig struct {
	label    string   // Field label (label:text)
	name     string   // Custom field name (name:custom)
	min      string   // Minimum constraint (min:N)
	max      string   // Maximum constraint (max:M)
	oneof    []string // Allowed values (oneof:a,b,c)
	secret   bool     // Field is secret (secret or secret:true)
	hasLabel bool     // Whether a label directive was present
}

// parseTag parses a `record` struct tag into a structured tagConfig.
// Tag format: "directive1:value1,directive2:value2,..."
// A comma only ends a directive when a known directive follows it, so labels
// and oneof lists may contain commas.
func parseTag(tag string) tagConfig {
	cfg := tagConfig{}

	for _, directive := range splitDirectives(tag) {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.SplitN(directive, ":", 2)
		name := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = parts[1]
		}

		switch name {
		case "label":
			cfg.label = value
			cfg.hasLabel = true
		case "name":
			cfg.name = strings.TrimSpace(value)
		case "min":
			cfg.min = strings.TrimSpace(value)
		case "max":
			cfg.max = strings.TrimSpace(value)
		case "oneof":
			if value != "" {
				cfg.oneof = strings.Split(value, ",")
				for i := range cfg.oneof {
					cfg.oneof[i] = strings.TrimSpace(cfg.oneof[i])
				}
			}
		case "secret":
			// Boolean directive: no value or explicit "true" means true
			cfg.secret = value != "false"
		}
	}

	return cfg
}

// splitDirectives splits a tag into directives. A comma separates two
// directives only if the text after it starts with a directive name.
func splitDirectives(tag string) []string {
	var directives []string
	var current strings.Builder

	for i := 0; i < len(tag); i++ {
		ch := tag[i]
		if ch == ',' && startsWithDirective(tag[i+1:]) {
			directives = append(directives, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(ch)
	}

	if current.Len() > 0 {
		directives = append(directives, current.String())
	}

	return directives
}

// startsWithDirective checks if a string starts with a known directive name.
func startsWithDirective(s string) bool {
	s = strings.TrimSpace(s)
	for _, d := range []string{"label:", "name:", "min:", "max:", "oneof:"} {
		if strings.HasPrefix(s, d) {
			return true
		}
	}
	return s == "secret" || strings.HasPrefix(s, "secret:") || strings.HasPrefix(s, "secret,")
}

// descriptor builds the Field described by the tag.
func (c tagConfig) descriptor() (*Field, []string) {
	var problems []string
	var checks []Predicate

	if c.min != "" {
		n, err := strconv.ParseFloat(c.min, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("min %q is not a number", c.min))
		} else {
			checks = append(checks, Min(n))
		}
	}
	if c.max != "" {
		n, err := strconv.ParseFloat(c.max, 64)
		if err != nil {
			problems = append(problems, fmt.Sprintf("max %q is not a number", c.max))
		} else {
			checks = append(checks, Max(n))
		}
	}
	if len(c.oneof) > 0 {
		checks = append(checks, oneofText(c.oneof))
	}

	var opts []FieldOption
	switch len(checks) {
	case 0:
	case 1:
		opts = append(opts, WithPrecondition(checks[0]))
	default:
		opts = append(opts, WithPrecondition(All(checks...)))
	}
	if c.secret {
		opts = append(opts, Secret())
	}

	return NewField(c.label, opts...), problems
}

// structTypes caches the Type derived for each Go struct type.
var structTypes sync.Map

// Of derives a record type from the `record` tags of struct T.
// Each exported field needs a label directive. Embedded structs become
// parent types, in embedding order. Results are cached per struct type.
//
//	type Person struct {
//	    Name string `record:"label:The name"`
//	    Age  int    `record:"label:The person's age,min:0,max:150"`
//	}
func Of[T any]() (*Type, error) {
	return typeOfStruct(TypeOf[T]())
}

// MustOf is like Of but panics on error.
func MustOf[T any]() *Type {
	t, err := Of[T]()
	if err != nil {
		panic(err)
	}
	return t
}

func typeOfStruct(st reflect.Type) (*Type, error) {
	if st.Kind() == reflect.Ptr {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, &DefinitionError{
			Type:     st.String(),
			Problems: []string{"only struct types can declare records"},
		}
	}

	if cached, ok := structTypes.Load(st); ok {
		return cached.(*Type), nil
	}

	b := NewType(st.Name())
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		tag, tagged := sf.Tag.Lookup("record")
		if tag == "-" {
			continue
		}

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && !tagged {
			parent, err := typeOfStruct(sf.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "embedded %s", sf.Type)
			}
			b.Extends(parent)
			continue
		}

		if !sf.IsExported() {
			if tagged {
				b.problems = append(b.problems, fmt.Sprintf("unexported field %s carries a record tag", sf.Name))
			}
			continue
		}

		cfg := parseTag(tag)
		name := cfg.name
		if name == "" {
			name = normalize.DeriveFieldName(sf.Name)
		}

		b.Annotate(name, sf.Type)
		if !cfg.hasLabel {
			continue
		}
		f, problems := cfg.descriptor()
		for _, p := range problems {
			b.problems = append(b.problems, fmt.Sprintf("field %q: %s", name, p))
		}
		b.Assign(name, f)
	}

	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	actual, _ := structTypes.LoadOrStore(st, t)
	return actual.(*Type), nil
}

// Decode copies the values of r into dst, a pointer to a struct declared
// for Of. r's type must be dst's record type or derive from it. Fields
// shadowed by an outer declaration are set wherever the value fits.
func Decode(r *Record, dst any) error {
	if r == nil {
		return errors.New("record is nil")
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.Newf("decode target must be a non-nil pointer to struct, got %T", dst)
	}

	target, err := typeOfStruct(rv.Elem().Type())
	if err != nil {
		return err
	}
	if !r.typ.IsA(target) {
		return errors.Newf("cannot decode %s into %s", r.typ.name, target.name)
	}

	out := rv.Elem()
	paths := make(map[string][][]int)
	collectFieldPaths(out.Type(), nil, paths)
	for _, s := range target.fields {
		v, _ := r.Get(s.Name)
		val := reflect.ValueOf(v)
		for _, path := range paths[s.Name] {
			f := out.FieldByIndex(path)
			if f.CanSet() && val.IsValid() && val.Type().AssignableTo(f.Type()) {
				f.Set(val)
			}
		}
	}
	return nil
}

// collectFieldPaths maps record field names to struct field index paths,
// outermost first.
func collectFieldPaths(st reflect.Type, prefix []int, out map[string][][]int) {
	type embed struct {
		path []int
		typ  reflect.Type
	}
	var embedded []embed
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		tag, tagged := sf.Tag.Lookup("record")
		if tag == "-" {
			continue
		}
		path := append(append([]int(nil), prefix...), i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && !tagged {
			embedded = append(embedded, embed{path: path, typ: sf.Type})
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name := parseTag(tag).name
		if name == "" {
			name = normalize.DeriveFieldName(sf.Name)
		}
		out[name] = append(out[name], path)
	}
	for _, e := range embedded {
		collectFieldPaths(e.typ, e.path, out)
	}
}
