package record

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// coerce converts a source value toward the declared type when the
// conversion loses nothing: strings are parsed (env vars), and numbers are
// converted between kinds when exact (TOML int64, JSON float64).
// Anything else is returned unchanged and left to the constructor's type check.
func coerce(v any, want reflect.Type) any {
	if v == nil || want == nil || want.Kind() == reflect.Interface {
		return v
	}
	if reflect.TypeOf(v) == want {
		return v
	}

	rv := reflect.ValueOf(v)
	out := reflect.New(want).Elem()

	switch want.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt64(rv)
		if !ok || out.OverflowInt(n) {
			return v
		}
		out.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := toUint64(rv)
		if !ok || out.OverflowUint(n) {
			return v
		}
		out.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(rv)
		if !ok || out.OverflowFloat(f) {
			return v
		}
		if want.Kind() == reflect.Float32 && float64(float32(f)) != f {
			return v
		}
		out.SetFloat(f)

	case reflect.Bool:
		switch rv.Kind() {
		case reflect.Bool:
			out.SetBool(rv.Bool())
		case reflect.String:
			b, err := strconv.ParseBool(strings.TrimSpace(rv.String()))
			if err != nil {
				return v
			}
			out.SetBool(b)
		default:
			return v
		}

	case reflect.String:
		if rv.Kind() != reflect.String {
			return v
		}
		out.SetString(rv.String())

	default:
		return v
	}

	return out.Interface()
}

func toInt64(rv reflect.Value) (int64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	case reflect.String:
		n, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func toUint64(rv reflect.Value) (uint64, bool) {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), true
	case reflect.String:
		n, err := strconv.ParseUint(strings.TrimSpace(rv.String()), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		n, ok := toInt64(rv)
		if !ok || n < 0 {
			return 0, false
		}
		return uint64(n), true
	}
}

func toFloat64(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		f := float64(n)
		if f >= math.MaxInt64 || int64(f) != n {
			return 0, false
		}
		return f, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		f := float64(u)
		if f >= math.MaxUint64 || uint64(f) != u {
			return 0, false
		}
		return f, true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
