package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the fatal generation failures.
var (
	// ErrInvalidModel indicates an unknown model identifier.
	ErrInvalidModel = errors.New("typescriptify: invalid model")
	// ErrUnsupportedConnection indicates a data source of an unsupported kind.
	ErrUnsupportedConnection = errors.New("typescriptify: unsupported database connection")
	// ErrUnresolvedRelation indicates a foreign key to a table with no known model.
	ErrUnresolvedRelation = errors.New("typescriptify: unresolved relation")
	// ErrInvalidCaseStyle indicates an unrecognized case style name.
	ErrInvalidCaseStyle = errors.New("typescriptify: invalid case style")
)

// InvalidModelError reports a model identifier the registry does not know.
type InvalidModelError struct {
	Model ModelID
}

// Error implements the error interface.
func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("typescriptify: %q is not a valid model", string(e.Model))
}

// Is reports whether target is ErrInvalidModel.
func (e *InvalidModelError) Is(target error) bool {
	return target == ErrInvalidModel
}

// UnsupportedConnectionError reports the active connection kind together
// with the kinds that are supported.
type UnsupportedConnectionError struct {
	Connection string
	Supported  []string
}

// Error implements the error interface.
func (e *UnsupportedConnectionError) Error() string {
	return fmt.Sprintf(
		"typescriptify: database connection %q is unsupported, the following database connections are supported: %s",
		e.Connection, strings.Join(e.Supported, ", "),
	)
}

// Is reports whether target is ErrUnsupportedConnection.
func (e *UnsupportedConnectionError) Is(target error) bool {
	return target == ErrUnsupportedConnection
}

// UnresolvedRelationError reports a foreign key column whose foreign table
// has no registered model.
type UnresolvedRelationError struct {
	Model        ModelID
	Column       string
	ForeignTable string
}

// Error implements the error interface.
func (e *UnresolvedRelationError) Error() string {
	var b strings.Builder
	b.WriteString("typescriptify: unresolved relation")
	if e.Model != "" {
		b.WriteString(" on model ")
		b.WriteString(string(e.Model))
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	b.WriteString(": no model is registered for table ")
	b.WriteString(e.ForeignTable)
	return b.String()
}

// Is reports whether target is ErrUnresolvedRelation.
func (e *UnresolvedRelationError) Is(target error) bool {
	return target == ErrUnresolvedRelation
}
