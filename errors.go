package record

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Error codes carried by FieldError.
const (
	ErrCodeMissing      = "missing"
	ErrCodeUnexpected   = "unexpected"
	ErrCodeInvalidType  = "invalid_type"
	ErrCodePrecondition = "precondition"
	ErrCodeImmutable    = "immutable"
	ErrCodeUnknownField = "unknown_field"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrConfiguration is returned when a record type definition is invalid.
	ErrConfiguration = errors.New("record: invalid type definition")

	// ErrMissingArgument is returned when a declared field has no argument.
	ErrMissingArgument = errors.New("record: missing argument")

	// ErrUnexpectedArgument is returned for an argument no field declares.
	ErrUnexpectedArgument = errors.New("record: unexpected argument")

	// ErrTypeMismatch is returned when a value is not of the declared type.
	ErrTypeMismatch = errors.New("record: type mismatch")

	// ErrPreconditionViolation is returned when a precondition rejects a value.
	ErrPreconditionViolation = errors.New("record: precondition violated")

	// ErrImmutable is returned by every attempt to assign a field after construction.
	ErrImmutable = errors.New("record: fields are read-only")

	// ErrUnknownField is returned when reading a field the record does not have.
	ErrUnknownField = errors.New("record: unknown field")
)

var errorKinds = map[string]error{
	ErrCodeMissing:      ErrMissingArgument,
	ErrCodeUnexpected:   ErrUnexpectedArgument,
	ErrCodeInvalidType:  ErrTypeMismatch,
	ErrCodePrecondition: ErrPreconditionViolation,
	ErrCodeImmutable:    ErrImmutable,
	ErrCodeUnknownField: ErrUnknownField,
}

// FieldError reports a construction, access or mutation failure on one field.
type FieldError struct {
	Type    string // Record type name (e.g., "Person")
	Field   string // Field name (e.g., "age")
	Code    string // Error code (e.g., "missing", "precondition")
	Message string // Human-readable description
	Cause   error  // Underlying failure, if any (e.g., a panicking precondition)
}

// Error formats the failure as "Type.field: code (message)".
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s (%s)", e.Type, e.Field, e.Code, e.Message)
}

// Unwrap returns the error kind matching Code.
func (e *FieldError) Unwrap() error {
	return errorKinds[e.Code]
}

// DefinitionError aggregates the problems found while defining a record type.
type DefinitionError struct {
	Type     string
	Problems []string
}

// Error formats the problems as a multi-line message.
func (e *DefinitionError) Error() string {
	if len(e.Problems) == 0 {
		return fmt.Sprintf("record type %s: invalid definition: no problems", e.Type)
	}

	var b strings.Builder
	if len(e.Problems) == 1 {
		fmt.Fprintf(&b, "record type %s: invalid definition: 1 problem\n", e.Type)
	} else {
		fmt.Fprintf(&b, "record type %s: invalid definition: %d problems\n", e.Type, len(e.Problems))
	}

	for _, p := range e.Problems {
		fmt.Fprintf(&b, "  - %s\n", p)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Unwrap returns ErrConfiguration.
func (e *DefinitionError) Unwrap() error {
	return ErrConfiguration
}

func newFieldError(typeName, field, code, format string, args ...any) *FieldError {
	return &FieldError{
		Type:    typeName,
		Field:   field,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
