// Domain errors raised by validation and table operations.

package tabular

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrMissingField      = errors.New("missing field")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrStructureMismatch = errors.New("structure mismatch")
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrIO                = errors.New("io error")
)

// Error describes a failed operation on a table.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Table is the table name involved, if any.
	Table string
	// Other is the second table of a difference.
	Other string
	// Column is the offending column, if any.
	Column string
	// Type is the declared column type on a type mismatch.
	Type DataType
	// Index is the row position, or -1 when the error is not about a row.
	Index int
	// Msg overrides the generated message.
	Msg string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.message()
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch e.Kind {
	case ErrNotFound:
		if e.Index >= 0 {
			return fmt.Sprintf("row %d not found in table %q", e.Index, e.Table)
		}
		return fmt.Sprintf("table %q not found", e.Table)
	case ErrDuplicateName:
		return fmt.Sprintf("table %q already exists", e.Table)
	case ErrMissingField:
		return fmt.Sprintf("column %q is missing from the row", e.Column)
	case ErrTypeMismatch:
		return fmt.Sprintf("value of column %q is not a valid %s", e.Column, e.Type)
	case ErrStructureMismatch:
		return fmt.Sprintf("tables %q and %q have different structure", e.Table, e.Other)
	case ErrIO:
		return "failed to persist database"
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Details returns structured fields for API responses.
func (e *Error) Details() map[string]any {
	d := make(map[string]any)
	if e.Table != "" {
		d["table"] = e.Table
	}
	if e.Other != "" {
		d["other"] = e.Other
	}
	if e.Column != "" {
		d["column"] = e.Column
	}
	if e.Type != "" {
		d["type"] = string(e.Type)
	}
	if e.Index >= 0 {
		d["index"] = e.Index
	}
	return d
}

// TableNotFound returns a not found error for a table.
func TableNotFound(name string) *Error {
	return &Error{Kind: ErrNotFound, Table: name, Index: -1}
}

// RowNotFound returns a not found error for a row position.
func RowNotFound(table string, index int) *Error {
	return &Error{Kind: ErrNotFound, Table: table, Index: index}
}

// DuplicateName returns an error for a table name collision.
func DuplicateName(name string) *Error {
	return &Error{Kind: ErrDuplicateName, Table: name, Index: -1}
}

// InvalidSchema returns an error for a malformed table definition.
func InvalidSchema(table, format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidSchema, Table: table, Index: -1, Msg: fmt.Sprintf(format, args...)}
}

// IOError wraps a persistence failure.
func IOError(err error) *Error {
	return &Error{Kind: ErrIO, Index: -1, Err: err}
}
