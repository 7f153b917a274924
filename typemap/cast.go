package typemap

import (
	"strings"

	"github.com/lucasefe/typescriptify/schema"
)

// Stringable cast tokens. Any token ending in `\AsStringable` is accepted
// as well, so fully qualified class names work.
const (
	CastStringable   = "stringable"
	CastAsStringable = "AsStringable"
)

var castTypes = map[string]Type{
	"int":                Number,
	"real":               Number,
	"float":              Number,
	"double":             Number,
	"integer":            Number,
	"bool":               Boolean,
	"boolean":            Boolean,
	"date":               String,
	"string":             String,
	"datetime":           String,
	"encrypted":          String,
	"timestamp":          String,
	"immutable_date":     String,
	"immutable_datetime": String,
	"array":              UnknownArray,
	"object":             UnknownRecord,
}

// CastType maps a model's cast declaration to a TypeScript type.
//
// Date attributes short-circuit to string: they are never present in the
// explicit cast table. Explicit tokens match exactly, except decimal which
// carries its precision ("decimal:2") and matches by prefix.
func CastType(spec schema.CastSpec) Type {
	if spec.Kind == schema.DateCast {
		return String
	}

	token := strings.TrimSpace(spec.Token)
	if t, ok := castTypes[token]; ok {
		return t
	}

	if isStringable(token) {
		return String
	}

	if strings.HasPrefix(token, "decimal") {
		return Number
	}

	return Unknown
}

func isStringable(token string) bool {
	if token == CastStringable || token == CastAsStringable {
		return true
	}
	return strings.HasSuffix(token, `\`+CastAsStringable)
}
