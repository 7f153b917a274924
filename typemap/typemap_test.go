package typemap

import (
	"testing"

	"github.com/lucasefe/typescriptify/schema"
)

func TestColumnType(t *testing.T) {
	tests := []struct {
		name     string
		rawType  string
		nullable bool
		expected Type
	}{
		{"bit", "bit(1)", false, Number},
		{"int", "int", false, Number},
		{"int unsigned", "int unsigned", false, Number},
		{"integer", "integer", false, Number},
		{"bigint unsigned", "bigint unsigned", false, Number},
		{"mediumint", "mediumint", false, Number},
		{"smallint", "smallint", false, Number},
		{"tinyint boolean", "tinyint(1)", false, Boolean},
		{"tinyint", "tinyint(4)", false, Number},
		{"decimal", "decimal(8,2)", false, Number},
		{"dec", "dec(10,0)", false, Number},
		{"float", "float(8,2)", false, Number},
		{"double", "double", false, Number},
		{"set", "set('a','b','c')", false, String},
		{"char", "char(255)", false, String},
		{"varchar", "varchar(255)", false, String},
		{"text", "text", false, String},
		{"tinytext", "tinytext", false, String},
		{"mediumtext", "mediumtext", false, String},
		{"longtext", "longtext", false, String},
		{"blob", "blob", false, String},
		{"tinyblob", "tinyblob", false, String},
		{"mediumblob", "mediumblob", false, String},
		{"longblob", "longblob", false, String},
		{"binary", "binary(16)", false, String},
		{"varbinary", "varbinary(255)", false, String},
		{"date", "date", false, String},
		{"datetime", "datetime", false, String},
		{"time", "time", false, String},
		{"timestamp", "timestamp", false, String},
		{"year", "year", false, String},
		{"bool", "bool", false, Boolean},
		{"boolean", "boolean", false, Boolean},
		{"upper case", "VARCHAR(255)", false, String},
		{"nullable", "varchar(255)", true, "string|null"},
		{"nullable number", "bigint unsigned", true, "number|null"},
		{"enum", "enum('a','b','c')", false, "'a'|'b'|'c'"},
		{"enum keeps case", "ENUM('Draft','Published')", false, "'Draft'|'Published'"},
		{"nullable enum", "enum('a','b')", true, "'a'|'b'|null"},
		{"enum with comma in value", "enum('a,b','c')", false, "'a,b'|'c'"},
		{"enum with escaped quote", "enum('it''s','c')", false, "'it''s'|'c'"},
		{"json unknown", "json", false, Unknown},
		{"nullable unknown", "json", true, Unknown},
		{"geometry unknown", "geometry", true, Unknown},
		{"empty", "", false, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ColumnType(tt.rawType, tt.nullable)
			if result != tt.expected {
				t.Errorf("ColumnType(%q, %v) = %v, want %v", tt.rawType, tt.nullable, result, tt.expected)
			}
		})
	}
}

func TestEnumUnion(t *testing.T) {
	tests := []struct {
		rawType  string
		expected Type
	}{
		{"enum('a')", "'a'"},
		{"enum('a', 'b')", "'a'|'b'"},
		{"enum()", Unknown},
		{"enum", Unknown},
	}

	for _, tt := range tests {
		if result := EnumUnion(tt.rawType); result != tt.expected {
			t.Errorf("EnumUnion(%q) = %v, want %v", tt.rawType, result, tt.expected)
		}
	}
}

func TestCastType(t *testing.T) {
	tests := []struct {
		name     string
		spec     schema.CastSpec
		expected Type
	}{
		{"int", schema.CastSpec{Token: "int"}, Number},
		{"integer", schema.CastSpec{Token: "integer"}, Number},
		{"real", schema.CastSpec{Token: "real"}, Number},
		{"float", schema.CastSpec{Token: "float"}, Number},
		{"double", schema.CastSpec{Token: "double"}, Number},
		{"decimal", schema.CastSpec{Token: "decimal"}, Number},
		{"decimal with precision", schema.CastSpec{Token: "decimal:2"}, Number},
		{"bool", schema.CastSpec{Token: "bool"}, Boolean},
		{"boolean", schema.CastSpec{Token: "boolean"}, Boolean},
		{"string", schema.CastSpec{Token: "string"}, String},
		{"date", schema.CastSpec{Token: "date"}, String},
		{"datetime", schema.CastSpec{Token: "datetime"}, String},
		{"timestamp", schema.CastSpec{Token: "timestamp"}, String},
		{"immutable_date", schema.CastSpec{Token: "immutable_date"}, String},
		{"immutable_datetime", schema.CastSpec{Token: "immutable_datetime"}, String},
		{"encrypted", schema.CastSpec{Token: "encrypted"}, String},
		{"stringable", schema.CastSpec{Token: "stringable"}, String},
		{"as stringable class", schema.CastSpec{Token: `Illuminate\Database\Eloquent\Casts\AsStringable`}, String},
		{"array", schema.CastSpec{Token: "array"}, UnknownArray},
		{"object", schema.CastSpec{Token: "object"}, UnknownRecord},
		{"collection unknown", schema.CastSpec{Token: "collection"}, Unknown},
		{"case sensitive", schema.CastSpec{Token: "Integer"}, Unknown},
		{"date attribute", schema.CastSpec{Attribute: "published_at", Kind: schema.DateCast}, String},
		{"date attribute ignores token", schema.CastSpec{Kind: schema.DateCast, Token: "array"}, String},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CastType(tt.spec); result != tt.expected {
				t.Errorf("CastType(%+v) = %v, want %v", tt.spec, result, tt.expected)
			}
		})
	}
}

func TestNullable(t *testing.T) {
	if got := Nullable(UnknownArray, true); got != "unknown[]|null" {
		t.Errorf("Nullable(unknown[]) = %s", got)
	}
	if got := Nullable(Unknown, true); got != Unknown {
		t.Errorf("Nullable(unknown) = %s, want unknown", got)
	}
	if got := Nullable(Number, false); got != Number {
		t.Errorf("Nullable(number, false) = %s", got)
	}
}

func TestMySQLTypeMapper(t *testing.T) {
	customMappings := map[string]string{
		"smallint": "boolean",
		"json":     "Record<string, unknown>",
		"point":    "string",
		"tinyint":  "number",
	}

	mapper := NewMySQLTypeMapper(customMappings)

	t.Run("custom mapping overrides default", func(t *testing.T) {
		if result := mapper.MapType("smallint(6)", false); result != Boolean {
			t.Errorf("Expected 'boolean' for smallint, got '%s'", result)
		}
	})

	t.Run("custom mapping for unmatched type", func(t *testing.T) {
		if result := mapper.MapType("json", true); result != "Record<string, unknown>|null" {
			t.Errorf("Expected nullable record for json, got '%s'", result)
		}
	})

	t.Run("custom mapping shadows longer default", func(t *testing.T) {
		if result := mapper.MapType("tinyint(1)", false); result != Number {
			t.Errorf("Expected 'number' for tinyint(1), got '%s'", result)
		}
	})

	t.Run("fallback to default mapping", func(t *testing.T) {
		if result := mapper.MapType("varchar(255)", false); result != String {
			t.Errorf("Expected 'string' for varchar, got '%s'", result)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if result := mapper.MapType("POINT", false); result != String {
			t.Errorf("Expected 'string' for POINT (case insensitive), got '%s'", result)
		}
	})
}

func TestMySQLTypeMapperLongestPrefixWins(t *testing.T) {
	mapper := NewMySQLTypeMapper(map[string]string{
		"int":          "bigint",
		"int unsigned": "string",
	})

	if result := mapper.MapType("int unsigned", false); result != String {
		t.Errorf("Expected longest prefix to win, got '%s'", result)
	}
	if result := mapper.MapType("int", false); result != "bigint" {
		t.Errorf("Expected 'bigint' for int, got '%s'", result)
	}
}

func TestMySQLTypeMapperNilMappings(t *testing.T) {
	mapper := NewMySQLTypeMapper(nil)

	if result := mapper.MapType("int", false); result != Number {
		t.Errorf("Expected 'number' for int with nil mappings, got '%s'", result)
	}
}

func TestMySQLTypeMapperLiteral(t *testing.T) {
	mapper := &MySQLTypeMapper{CustomMappings: map[string]string{"year": "number"}}

	if result := mapper.MapType("year", false); result != Number {
		t.Errorf("Expected struct literal mapper to honour custom mappings, got '%s'", result)
	}
}

func TestDefaultTypeMappings(t *testing.T) {
	if DefaultTypeMappings["smallint"] != "number" {
		t.Errorf("DefaultTypeMappings[smallint] = %s", DefaultTypeMappings["smallint"])
	}
	if len(DefaultTypeMappings) != len(columnRules) {
		t.Errorf("DefaultTypeMappings has %d entries, want %d", len(DefaultTypeMappings), len(columnRules))
	}
}
