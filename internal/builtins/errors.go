package builtins

import (
	"errors"
	"fmt"
)

// ErrInvalidID is the sentinel matched by every *IDError.
var ErrInvalidID = errors.New("invalid builtin ID")

// IDErrorKind tells why an ID was rejected.
type IDErrorKind uint8

const (
	// IDErrOutOfRange covers 0 and IDs past the last table.
	IDErrOutOfRange IDErrorKind = iota + 1
	// IDErrNotAux is returned when an aux-only operation gets a non-aux ID.
	IDErrNotAux
)

// IDError reports a malformed flat builtin ID. It signals a caller bug, not a
// user-facing diagnostic.
type IDError struct {
	Kind  IDErrorKind
	ID    ID
	Limit ID // one past the last valid ID
}

func (e *IDError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case IDErrOutOfRange:
		return fmt.Sprintf("invalid builtin ID %d (valid range 1..%d)", e.ID, e.Limit-1)
	case IDErrNotAux:
		return fmt.Sprintf("builtin ID %d does not belong to the auxiliary target", e.ID)
	default:
		return fmt.Sprintf("builtin ID error kind=%d id=%d", e.Kind, e.ID)
	}
}

func (e *IDError) Is(target error) bool {
	return target == ErrInvalidID
}
