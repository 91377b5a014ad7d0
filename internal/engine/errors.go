package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the engine reports.
type ErrorKind string

const (
	KindInsertError ErrorKind = "insert"
	KindUpdateError ErrorKind = "update"
	KindDeleteError ErrorKind = "delete"
	KindSelectError ErrorKind = "select"
	KindNoDataError ErrorKind = "no_data"

	// Reserved for a persistence or query layer. Nothing in this package
	// returns them.
	KindConnectionError ErrorKind = "connection"
	KindQueryError      ErrorKind = "query"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrInsert     = &Error{Kind: KindInsertError}
	ErrUpdate     = &Error{Kind: KindUpdateError}
	ErrDelete     = &Error{Kind: KindDeleteError}
	ErrSelect     = &Error{Kind: KindSelectError}
	ErrNoData     = &Error{Kind: KindNoDataError}
	ErrConnection = &Error{Kind: KindConnectionError}
	ErrQuery      = &Error{Kind: KindQueryError}
)

// Error describes a failed engine operation.
type Error struct {
	Kind   ErrorKind
	Op     string // operation name, e.g. "insert_row"
	Target string // name of the container the operation ran against
	Column string // column name (empty if not column-specific)
	Value  *Value // offending or match value (nil if none)
	Reason string // human-readable explanation
}

func (e *Error) Error() string {
	var parts []string

	head := string(e.Kind) + " error"
	if e.Op != "" {
		head = fmt.Sprintf("%s in %s", head, e.Op)
	}
	parts = append(parts, head)

	if e.Target != "" {
		parts = append(parts, e.Target)
	}

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%#v", *e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " - ")
}

// Is matches any *Error of the same Kind, which makes the package sentinels
// usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the ErrorKind of err, or "" if err is not an engine error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newDuplicateError(op, path, name string) *Error {
	return &Error{
		Kind:   KindInsertError,
		Op:     op,
		Target: path,
		Reason: fmt.Sprintf("%q already exists", name),
	}
}

func newNotFoundError(op, path, name string) *Error {
	return &Error{
		Kind:   KindSelectError,
		Op:     op,
		Target: path,
		Reason: fmt.Sprintf("%q does not exist", name),
	}
}

func newUnknownColumnError(op, path, column string) *Error {
	return &Error{
		Kind:   KindSelectError,
		Op:     op,
		Target: path,
		Column: column,
		Reason: "unknown column",
	}
}

func newNoMatchError(kind ErrorKind, op, path, column string, value Value) *Error {
	return &Error{
		Kind:   kind,
		Op:     op,
		Target: path,
		Column: column,
		Value:  &value,
		Reason: "no row matches",
	}
}
