// Package relation decides whether a column is a foreign key to a known
// model and derives the property name used for the related interface.
package relation

import (
	"strings"

	"github.com/lucasefe/typescriptify/schema"
)

// TableModels maps a table name to the model stored in it.
type TableModels interface {
	ModelForTable(table string) (schema.ModelID, bool)
}

// TableMap is a TableModels backed by a plain map.
type TableMap map[string]schema.ModelID

// ModelForTable implements TableModels.
func (m TableMap) ModelForTable(table string) (schema.ModelID, bool) {
	id, ok := m[table]
	return id, ok
}

// Resolve reports the model referenced by column, if column is a foreign key.
//
// Constraints are scanned in order and the first one whose local columns
// contain column wins. A foreign key to a table without a model is an
// *schema.UnresolvedRelationError: there is no safe type to fall back to.
func Resolve(column string, foreignKeys []schema.ForeignKey, tables TableModels) (schema.ModelID, bool, error) {
	for _, fk := range foreignKeys {
		if !fk.HasLocalColumn(column) {
			continue
		}

		id, ok := tables.ModelForTable(fk.ForeignTable)
		if !ok {
			return "", false, &schema.UnresolvedRelationError{Column: column, ForeignTable: fk.ForeignTable}
		}
		return id, true, nil
	}

	return "", false, nil
}

// PredictName derives a relation property name from a foreign key column by
// stripping a trailing "_id" and applying style ("role_id" -> "role",
// "parent_user_id" -> "parentUser" with the default style).
//
// The result is a naming heuristic. It is not checked against the relation
// accessors the model actually declares and may differ from them.
func PredictName(column string, style CaseStyle) string {
	name := column
	if len(name) > len("_id") && strings.HasSuffix(name, "_id") {
		name = strings.TrimSuffix(name, "_id")
	}

	if name == "" {
		return name
	}
	if style == CaseDefault {
		return camelizeDownFirst(name)
	}
	return FormatName(name, style)
}
