package model

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrReference is wrapped by ReferenceError.
	ErrReference = errors.New("unresolved reference")
	// ErrValidation is wrapped by ValidationError.
	ErrValidation = errors.New("invalid connection")
	// ErrSchema is wrapped by SchemaError.
	ErrSchema = errors.New("schema error")
	// ErrIO is wrapped by IOError.
	ErrIO = errors.New("i/o error")
)

// ReferenceError reports a UID field that does not resolve within the
// project it was checked against.
type ReferenceError struct {
	Owner string // human-readable path of the referring entity, e.g. "Swc_A/Rp_Speed"
	Field string // e.g. "interface_uid"
	UID   UID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s %q does not resolve", e.Owner, e.Field, string(e.UID))
}

func (e *ReferenceError) Unwrap() error { return ErrReference }

// Reason classifies a rejected connection.
type Reason string

const (
	ComponentNotFound   Reason = "component_not_found"
	PortNotFound        Reason = "port_not_found"
	WrongDirection      Reason = "wrong_direction"
	InterfaceMismatch   Reason = "interface_mismatch"
	DuplicateConnection Reason = "duplicate_connection"
)

// ValidationError is a connection-rule violation. It is always recoverable:
// the caller simply does not create the connection.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// SchemaError reports a malformed document: an unknown enum tag or a missing
// structurally required key.
type SchemaError struct {
	Field string
	Line  int
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("schema: line %d: %s: %s", e.Line, e.Field, e.Msg)
	}
	return fmt.Sprintf("schema: %s: %s", e.Field, e.Msg)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// IOError wraps an underlying file read, write or directory-create failure.
type IOError struct {
	Op   string // "read", "write", "mkdir"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// IsReason reports whether err is a ValidationError with the given reason.
func IsReason(err error, r Reason) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Reason == r
}

func quote(s string) string { return strconv.Quote(s) }
