package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain layer operations.
// Use errors.Is against these to test the kind of any *Error or *ValidationError.
var (
	// ErrNotFound indicates that a requested entity (or one entity of a batch) was not found
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates a unique constraint violation, e.g. a duplicate category name
	ErrConflict = errors.New("conflict")

	// ErrInvalidReference indicates a foreign key violation not otherwise classified
	ErrInvalidReference = errors.New("invalid reference")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrInternal indicates an unclassified store failure
	ErrInternal = errors.New("internal error")
)

// ErrorKind is the failure taxonomy exposed to callers of the usecase layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindConflict
	KindInvalidReference
	KindValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidReference:
		return "invalid_reference"
	case KindValidationFailed:
		return "validation_failed"
	default:
		return "internal"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindInvalidReference:
		return ErrInvalidReference
	case KindValidationFailed:
		return ErrValidationFailed
	default:
		return ErrInternal
	}
}

// Error is a classified failure carrying the operation name and every offending identifier.
type Error struct {
	Kind   ErrorKind
	Op     string   // e.g. "update article"
	Entity string   // e.g. "article", "category"
	IDs    []string // offending identifiers, all of them
	Msg    string
	Err    error
}

// Error returns a message suitable for building a user-facing response.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Kind == KindNotFound && len(e.IDs) == 1:
		fmt.Fprintf(&b, "%s with ID %q not found", e.Entity, e.IDs[0])
	case e.Kind == KindNotFound && len(e.IDs) > 1:
		fmt.Fprintf(&b, "%s not found: %s", plural(e.Entity), strings.Join(e.IDs, ", "))
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(e.Kind.sentinel().Error())
	}
	return b.String()
}

func plural(noun string) string {
	if strings.HasSuffix(noun, "y") {
		return strings.TrimSuffix(noun, "y") + "ies"
	}
	return noun + "s"
}

// Unwrap returns the underlying store error, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNotFound) and friends work for classified errors.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// NotFound builds a KindNotFound error naming every missing id.
func NotFound(op, entity string, ids ...string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Entity: entity, IDs: ids}
}

// Conflict builds a KindConflict error.
func Conflict(op, entity, msg string, err error) *Error {
	return &Error{Kind: KindConflict, Op: op, Entity: entity, Msg: msg, Err: err}
}

// InvalidReference builds a KindInvalidReference error.
func InvalidReference(op string, err error) *Error {
	return &Error{Kind: KindInvalidReference, Op: op, Msg: "invalid reference", Err: err}
}

// Internal builds a KindInternal error.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// KindOf reports the taxonomy kind of err. Unclassified errors are KindInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidationFailed
	}
	return KindInternal
}

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports ValidationError as a kind of ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
