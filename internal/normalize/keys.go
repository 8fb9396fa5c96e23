package normalize

import (
	"strings"
	"unicode"
)

// ToLowerDotPath normalizes an argument key to a lowercase dot-separated path.
// Double underscores (__) become dots; single underscores are preserved.
// Examples:
//   - "FOO__BAR" → "foo.bar"
//   - "MAX_WEIGHT" → "max_weight"
func ToLowerDotPath(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "__", "."))
}

// DeriveFieldName derives a record field name from a Go struct field name
// by lowercasing the first letter.
// Examples:
//   - "Name" → "name"
//   - "HomePlanet" → "homePlanet"
//   - "ID" → "iD"
func DeriveFieldName(goName string) string {
	if goName == "" {
		return ""
	}

	runes := []rune(goName)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// IsIdentifier reports whether s is usable as a field or type name:
// a letter or underscore followed by letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
