package core

import "errors"

// Errors returned by list operations. Every failing call leaves the list in
// the state it had before the call. Callers match with errors.Is.
var (
	// ErrArityMismatch means the number of values does not match the number of columns.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrInvalidValue means a value could not be coerced into the column's type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownColumn means no column has the requested name or id.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNotFound means a row, list or template id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedColumnType means no coercion rule is registered for a column type.
	ErrUnsupportedColumnType = errors.New("unsupported column type")
)
