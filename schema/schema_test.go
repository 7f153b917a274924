package schema

import (
	"errors"
	"fmt"
	"testing"
)

func TestFilterHidden(t *testing.T) {
	columns := []Column{
		{Name: "id", RawType: "bigint unsigned"},
		{Name: "email", RawType: "varchar(255)"},
		{Name: "password", RawType: "varchar(255)"},
	}

	filtered := FilterHidden(columns, map[string]bool{"password": true})

	if len(filtered) != 2 {
		t.Fatalf("Expected 2 columns after filtering, got %d", len(filtered))
	}
	if filtered[0].Name != "id" || filtered[1].Name != "email" {
		t.Errorf("Unexpected column order after filtering: %v", filtered)
	}
}

func TestFilterHiddenNilSet(t *testing.T) {
	columns := []Column{{Name: "id"}}

	filtered := FilterHidden(columns, nil)

	if len(filtered) != 1 {
		t.Errorf("Expected 1 column when hidden set is nil, got %d", len(filtered))
	}
}

func TestFilterHiddenOriginalUnmodified(t *testing.T) {
	columns := []Column{{Name: "id"}, {Name: "password"}}

	FilterHidden(columns, map[string]bool{"password": true})

	if len(columns) != 2 || columns[1].Name != "password" {
		t.Errorf("Original columns were modified: %v", columns)
	}
}

func TestFilterTables(t *testing.T) {
	tables := []string{"users", "roles", "migrations", "jobs"}

	filtered := FilterTables(tables, []string{"migrations", "jobs"})

	if len(filtered) != 2 || filtered[0] != "users" || filtered[1] != "roles" {
		t.Errorf("Unexpected tables after filtering: %v", filtered)
	}
}

func TestForeignKeyHasLocalColumn(t *testing.T) {
	fk := ForeignKey{LocalColumns: []string{"author_id", "editor_id"}, ForeignTable: "users"}

	tests := []struct {
		column   string
		expected bool
	}{
		{"author_id", true},
		{"editor_id", true},
		{"role_id", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := fk.HasLocalColumn(tt.column); got != tt.expected {
			t.Errorf("HasLocalColumn(%q) = %v, want %v", tt.column, got, tt.expected)
		}
	}
}

func TestCastKindString(t *testing.T) {
	if ExplicitCast.String() != "explicit" {
		t.Errorf("ExplicitCast.String() = %s", ExplicitCast.String())
	}
	if DateCast.String() != "date" {
		t.Errorf("DateCast.String() = %s", DateCast.String())
	}
	if CastKind(42).String() != "unknown" {
		t.Errorf("CastKind(42).String() = %s", CastKind(42).String())
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "invalid model",
			err:      &InvalidModelError{Model: "Missing"},
			sentinel: ErrInvalidModel,
			message:  `typescriptify: "Missing" is not a valid model`,
		},
		{
			name:     "unsupported connection",
			err:      &UnsupportedConnectionError{Connection: "sqlite", Supported: []string{"mysql"}},
			sentinel: ErrUnsupportedConnection,
			message:  `typescriptify: database connection "sqlite" is unsupported, the following database connections are supported: mysql`,
		},
		{
			name:     "unresolved relation",
			err:      &UnresolvedRelationError{Model: "User", Column: "team_id", ForeignTable: "teams"},
			sentinel: ErrUnresolvedRelation,
			message:  "typescriptify: unresolved relation on model User column team_id: no model is registered for table teams",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("failed to generate: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if tt.err.Error() != tt.message {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func TestUnsupportedConnectionErrorAs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &UnsupportedConnectionError{Connection: "postgres", Supported: []string{"mysql"}})

	var target *UnsupportedConnectionError
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed for UnsupportedConnectionError")
	}
	if len(target.Supported) != 1 || target.Supported[0] != "mysql" {
		t.Errorf("Supported = %v, want [mysql]", target.Supported)
	}
}
