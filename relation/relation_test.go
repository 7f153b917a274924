package relation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasefe/typescriptify/schema"
)

func TestResolve(t *testing.T) {
	fks := []schema.ForeignKey{
		{LocalColumns: []string{"role_id"}, ForeignTable: "roles"},
		{LocalColumns: []string{"parent_id", "manager_id"}, ForeignTable: "users"},
	}
	tables := TableMap{"roles": "Role", "users": "User"}

	tests := []struct {
		name     string
		column   string
		expected schema.ModelID
		found    bool
	}{
		{"single column constraint", "role_id", "Role", true},
		{"merged constraint first column", "parent_id", "User", true},
		{"merged constraint second column", "manager_id", "User", true},
		{"not a foreign key", "email", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found, err := Resolve(tt.column, fks, tables)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestResolveFirstConstraintWins(t *testing.T) {
	fks := []schema.ForeignKey{
		{LocalColumns: []string{"owner_id"}, ForeignTable: "teams"},
		{LocalColumns: []string{"owner_id"}, ForeignTable: "users"},
	}

	id, found, err := Resolve("owner_id", fks, TableMap{"teams": "Team", "users": "User"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, schema.ModelID("Team"), id)
}

func TestResolveUnresolvedRelation(t *testing.T) {
	fks := []schema.ForeignKey{{LocalColumns: []string{"team_id"}, ForeignTable: "teams"}}

	_, found, err := Resolve("team_id", fks, TableMap{})
	require.Error(t, err)
	assert.False(t, found)
	assert.True(t, errors.Is(err, schema.ErrUnresolvedRelation))

	var unresolved *schema.UnresolvedRelationError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "teams", unresolved.ForeignTable)
	assert.Equal(t, "team_id", unresolved.Column)
}

func TestResolveNoForeignKeys(t *testing.T) {
	id, found, err := Resolve("role_id", nil, TableMap{"roles": "Role"})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, id)
}

func TestPredictName(t *testing.T) {
	tests := []struct {
		column   string
		style    CaseStyle
		expected string
	}{
		{"role_id", CaseDefault, "role"},
		{"parent_id", CaseDefault, "parent"},
		{"parent_user_id", CaseDefault, "parentUser"},
		{"owner", CaseDefault, "owner"},
		{"parent_user_id", CaseSnake, "parent_user"},
		{"parent_user_id", CasePascal, "ParentUser"},
		{"parent_user_id", CaseKebab, "parent-user"},
		{"parent_user_id", CaseCamel, "parentUser"},
	}

	for _, tt := range tests {
		t.Run(tt.column+"/"+string(tt.style), func(t *testing.T) {
			assert.Equal(t, tt.expected, PredictName(tt.column, tt.style))
		})
	}
}

func TestParseCaseStyle(t *testing.T) {
	for _, style := range CaseStyles() {
		parsed, err := ParseCaseStyle(string(style))
		require.NoError(t, err)
		assert.Equal(t, style, parsed)
	}

	parsed, err := ParseCaseStyle("")
	require.NoError(t, err)
	assert.Equal(t, CaseDefault, parsed)

	parsed, err = ParseCaseStyle("CAMEL")
	require.NoError(t, err)
	assert.Equal(t, CaseCamel, parsed)

	_, err = ParseCaseStyle("screaming")
	assert.ErrorIs(t, err, schema.ErrInvalidCaseStyle)
}

func TestFormatName(t *testing.T) {
	tests := []struct {
		name     string
		style    CaseStyle
		expected string
	}{
		{"email_verified_at", CaseDefault, "email_verified_at"},
		{"email_verified_at", CaseCamel, "emailVerifiedAt"},
		{"email_verified_at", CasePascal, "EmailVerifiedAt"},
		{"emailVerifiedAt", CaseSnake, "email_verified_at"},
		{"email_verified_at", CaseKebab, "email-verified-at"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+string(tt.style), func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatName(tt.name, tt.style))
		})
	}
}
