// Package schema defines the data structures shared by the introspection,
// registry and generator packages: table columns, foreign key constraints,
// model cast declarations and the error taxonomy.
package schema

import (
	"slices"
	"strings"
)

// ModelID identifies a model known to a registry (e.g. "User" or
// "App\Models\User").
type ModelID string

// BaseName returns the segment after the last namespace separator
// ("App\Models\User" -> "User").
func (id ModelID) BaseName() string {
	s := string(id)
	if i := strings.LastIndexAny(s, `\/.`); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Column represents one physical table column as reported by SHOW COLUMNS.
type Column struct {
	// Name is the column name.
	Name string `msgpack:"name"`
	// RawType is the driver-native type string (e.g. "varchar(255)", "enum('a','b')").
	RawType string `msgpack:"raw_type"`
	// Nullable indicates whether the column allows NULL values.
	Nullable bool `msgpack:"nullable"`
	// Key is the index marker reported by MySQL ("PRI", "UNI", "MUL" or empty).
	Key string `msgpack:"key,omitempty"`
	// Default is the column's default value expression, or nil if none.
	Default *string `msgpack:"default,omitempty"`
	// Extra holds additional column information such as "auto_increment".
	Extra string `msgpack:"extra,omitempty"`
}

// ForeignKey represents the foreign key constraints from one table to a
// single foreign table. Constraints targeting the same foreign table are
// merged, so a column must be found by scanning LocalColumns.
type ForeignKey struct {
	// LocalColumns lists the referencing column names.
	LocalColumns []string `msgpack:"local_columns"`
	// ForeignTable is the referenced table.
	ForeignTable string `msgpack:"foreign_table"`
}

// HasLocalColumn reports whether column is one of the constraint's local columns.
func (fk ForeignKey) HasLocalColumn(column string) bool {
	return slices.Contains(fk.LocalColumns, column)
}

// CastKind distinguishes explicit attribute casts from date attributes.
type CastKind int

const (
	// ExplicitCast is an attribute declared in the model's cast table.
	ExplicitCast CastKind = iota
	// DateCast is an attribute declared as a date. Dates always serialize
	// to strings and never appear in the cast table.
	DateCast
)

// String returns the name of the cast kind.
func (k CastKind) String() string {
	switch k {
	case ExplicitCast:
		return "explicit"
	case DateCast:
		return "date"
	default:
		return "unknown"
	}
}

// CastSpec describes how a model casts one of its attributes.
type CastSpec struct {
	// Attribute is the attribute (column) name.
	Attribute string
	// Kind tells whether the attribute is explicitly cast or a date.
	Kind CastKind
	// Token is the cast type token (e.g. "integer", "decimal:2"). Empty for dates.
	Token string
}
