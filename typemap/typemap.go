// Package typemap maps MySQL column types and model cast tokens to
// TypeScript types.
//
// Raw column types are matched by case-insensitive prefix against a fixed,
// ordered table; the first match wins:
//
//	typemap.ColumnType("varchar(255)", true)        // "string|null"
//	typemap.ColumnType("enum('a','b','c')", false)  // "'a'|'b'|'c'"
//	typemap.ColumnType("json", true)                // "unknown"
//
// Custom prefixes can be layered on top of the fixed table:
//
//	mapper := typemap.NewMySQLTypeMapper(map[string]string{
//	    "smallint": "boolean",
//	})
package typemap

import (
	"sort"
	"strings"
)

// Type is a TypeScript type expression.
type Type string

// Well-known TypeScript types.
const (
	Number  Type = "number"
	String  Type = "string"
	Boolean Type = "boolean"
	// Unknown is returned when no rule matches. It is never widened with |null.
	Unknown Type = "unknown"
	// UnknownArray is the type of array casts.
	UnknownArray Type = "unknown[]"
	// UnknownRecord is the type of object casts.
	UnknownRecord Type = "Record<string, unknown>"
)

// String returns the type expression.
func (t Type) String() string {
	return string(t)
}

// IsUnknown reports whether t is the Unknown sentinel.
func (t Type) IsUnknown() bool {
	return t == Unknown
}

// Nullable widens t to "t|null" when nullable is true. Unknown stays unknown.
func Nullable(t Type, nullable bool) Type {
	if !nullable || t.IsUnknown() {
		return t
	}
	return t + "|null"
}

// TypeMapper converts a raw column type to a TypeScript type.
// Implement this interface to customize type mapping behavior.
type TypeMapper interface {
	// MapType maps rawType (e.g. "int unsigned", "varchar(255)") and applies
	// the nullable widening.
	MapType(rawType string, nullable bool) Type
}

type prefixRule struct {
	prefix string
	target Type
}

// columnRules is evaluated in order; the first matching prefix wins.
// tinyint(1) must precede tinyint.
var columnRules = []prefixRule{
	{"bit", Number},
	{"int", Number},
	{"dec", Number},
	{"set", String},
	{"char", String},
	{"text", String},
	{"blob", String},
	{"date", String},
	{"time", String},
	{"year", String},
	{"bool", Boolean},
	{"float", Number},
	{"bigint", Number},
	{"double", Number},
	{"binary", String},
	{"decimal", Number},
	{"integer", Number},
	{"varchar", String},
	{"boolean", Boolean},
	{"tinyint(1)", Boolean},
	{"tinyint", Number},
	{"tinyblob", String},
	{"tinytext", String},
	{"longtext", String},
	{"longblob", String},
	{"datetime", String},
	{"smallint", Number},
	{"varbinary", String},
	{"mediumint", Number},
	{"timestamp", String},
	{"mediumtext", String},
	{"mediumblob", String},
}

// DefaultTypeMappings lists the fixed prefix table as prefix -> type.
// This can be used as a reference when creating custom type mappers.
var DefaultTypeMappings = func() map[string]string {
	m := make(map[string]string, len(columnRules))
	for _, rule := range columnRules {
		m[rule.prefix] = string(rule.target)
	}
	return m
}()

// MySQLTypeMapper maps MySQL column types to TypeScript types.
// It supports custom prefix overrides via the CustomMappings field.
type MySQLTypeMapper struct {
	// CustomMappings allows overriding default type mappings.
	// Keys are raw type prefixes (case-insensitive), values are TypeScript types.
	CustomMappings map[string]string

	custom []prefixRule
}

// NewMySQLTypeMapper creates a new TypeMapper with optional custom mappings.
// If customMappings is nil, only default mappings are used.
func NewMySQLTypeMapper(customMappings map[string]string) *MySQLTypeMapper {
	m := &MySQLTypeMapper{CustomMappings: customMappings}
	m.custom = compileCustom(customMappings)
	return m
}

// MapType implements TypeMapper for MySQL databases.
// It checks CustomMappings first, longest prefix first, then falls back to
// the default mappings.
func (m *MySQLTypeMapper) MapType(rawType string, nullable bool) Type {
	rules := m.custom
	if rules == nil {
		rules = compileCustom(m.CustomMappings)
	}

	lower := strings.ToLower(strings.TrimSpace(rawType))
	for _, rule := range rules {
		if strings.HasPrefix(lower, rule.prefix) {
			return Nullable(rule.target, nullable)
		}
	}

	return ColumnType(rawType, nullable)
}

func compileCustom(mappings map[string]string) []prefixRule {
	if len(mappings) == 0 {
		return nil
	}

	rules := make([]prefixRule, 0, len(mappings))
	for prefix, target := range mappings {
		rules = append(rules, prefixRule{prefix: strings.ToLower(strings.TrimSpace(prefix)), target: Type(target)})
	}
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].prefix) != len(rules[j].prefix) {
			return len(rules[i].prefix) > len(rules[j].prefix)
		}
		return rules[i].prefix < rules[j].prefix
	})

	return rules
}

// ColumnType maps a raw MySQL column type to a TypeScript type using the
// fixed prefix table, widening to "T|null" when nullable.
func ColumnType(rawType string, nullable bool) Type {
	return Nullable(mapColumnType(rawType), nullable)
}

func mapColumnType(rawType string) Type {
	trimmed := strings.TrimSpace(rawType)
	lower := strings.ToLower(trimmed)

	for _, rule := range columnRules {
		if strings.HasPrefix(lower, rule.prefix) {
			return rule.target
		}
	}

	if strings.HasPrefix(lower, "enum") {
		return EnumUnion(trimmed)
	}

	return Unknown
}

// EnumUnion converts an enum column type such as "enum('a','b')" to the
// literal union "'a'|'b'". Values keep their original quoting and case.
// It returns Unknown when no values can be extracted.
func EnumUnion(rawType string) Type {
	start := strings.Index(rawType, "(")
	end := strings.LastIndex(rawType, ")")
	if start < 0 || end <= start {
		return Unknown
	}

	values := splitEnumValues(rawType[start+1 : end])
	if len(values) == 0 {
		return Unknown
	}

	return Type(strings.Join(values, "|"))
}

// splitEnumValues splits on commas outside single quotes. MySQL escapes a
// quote inside a value by doubling it.
func splitEnumValues(list string) []string {
	var (
		values  []string
		current strings.Builder
		quoted  bool
	)

	flush := func() {
		if v := strings.TrimSpace(current.String()); v != "" {
			values = append(values, v)
		}
		current.Reset()
	}

	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case c == '\'' && quoted && i+1 < len(list) && list[i+1] == '\'':
			current.WriteString("''")
			i++
		case c == '\'':
			quoted = !quoted
			current.WriteByte(c)
		case c == ',' && !quoted:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return values
}
