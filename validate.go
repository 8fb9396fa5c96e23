package record

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Predicate is a single-value precondition. It returns true when v is acceptable.
type Predicate func(v any) bool

func always(any) bool { return true }

// Min accepts numbers >= n, and strings whose length is >= n.
func Min(n float64) Predicate {
	return func(v any) bool {
		x, ok := measure(v)
		return ok && x >= n
	}
}

// Max accepts numbers <= n, and strings whose length is <= n.
func Max(n float64) Predicate {
	return func(v any) bool {
		x, ok := measure(v)
		return ok && x <= n
	}
}

// Between accepts numbers in the closed interval [lo, hi].
func Between(lo, hi float64) Predicate {
	return All(Min(lo), Max(hi))
}

// MinLen accepts strings of at least n bytes.
func MinLen(n int) Predicate {
	return Check(func(s string) bool { return len(s) >= n })
}

// MaxLen accepts strings of at most n bytes.
func MaxLen(n int) Predicate {
	return Check(func(s string) bool { return len(s) <= n })
}

// OneOf accepts values equal to one of the allowed values.
func OneOf(values ...any) Predicate {
	return func(v any) bool {
		if v == nil || !reflect.TypeOf(v).Comparable() {
			return false
		}
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

// All accepts values that satisfy every predicate.
func All(ps ...Predicate) Predicate {
	return func(v any) bool {
		for _, p := range ps {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Check adapts a typed function into a Predicate. Values that are not a T fail.
func Check[T any](fn func(T) bool) Predicate {
	return func(v any) bool {
		t, ok := v.(T)
		return ok && fn(t)
	}
}

// oneofText compares the value's text form against options parsed from a
// struct tag, so "oneof:1,2,3" works for integer fields.
func oneofText(options []string) Predicate {
	return func(v any) bool {
		text, ok := formatOption(reflect.ValueOf(v))
		if !ok {
			return false
		}
		for _, allowed := range options {
			if text == allowed {
				return true
			}
		}
		return false
	}
}

// measure returns a number's value, or a string's length.
func measure(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		return float64(rv.Len()), true
	default:
		return 0, false
	}
}

func formatOption(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	default:
		return "", false
	}
}

// checkPrecondition runs p against v. A panicking predicate is a violation;
// the recovered value is returned as the cause.
func checkPrecondition(p Predicate, v any) (ok bool, cause error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			cause = errors.Newf("precondition panicked: %v", r)
		}
	}()
	return p(v), nil
}

// validateFields runs the type and precondition checks over every field,
// in that order. It returns the first failure.
func (t *Type) validateFields(args Args) error {
	for _, s := range t.fields {
		v := args[s.Name]
		if !conforms(v, s.Type) {
			return newFieldError(t.name, s.Name, ErrCodeInvalidType,
				"expected %s, got %s", s.Type, typeName(v))
		}
	}

	for _, s := range t.fields {
		if !s.Descriptor.HasPrecondition() {
			continue
		}
		v := args[s.Name]
		ok, cause := checkPrecondition(s.Descriptor.Precondition(), v)
		if ok {
			continue
		}
		fe := newFieldError(t.name, s.Name, ErrCodePrecondition,
			"value %s does not satisfy the precondition", displayValue(s, v))
		if cause != nil {
			fe.Message = fmt.Sprintf("%s: %v", fe.Message, cause)
			fe.Cause = cause
		}
		return fe
	}

	return nil
}
