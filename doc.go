// Package typescriptify generates TypeScript interfaces from MySQL tables
// and the metadata of the models stored in them.
//
// Each column becomes a property typed from its column type, or from the
// model's cast when one is declared. Nullable columns widen to "T|null".
// Hidden attributes are left out unless requested. With relations enabled,
// foreign keys to other registered models become nested interfaces, which
// are emitted once each and before the interfaces that use them.
//
// # Basic Usage
//
// Generate an interface from a connection string:
//
//	import "github.com/lucasefe/typescriptify"
//
//	models, err := registry.New(registry.Model{Name: "User", Hidden: []string{"password"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	output, err := typescriptify.GenerateFromConnectionString(ctx, dsn, models, "User", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(output)
//
// # Configuration
//
// Use Config to include hidden attributes and relations:
//
//	config := &typescriptify.Config{
//	    IncludeRelations: true,
//	    CaseStyle:        relation.CaseCamel,
//	    ExcludeTables:    []string{"migrations"},
//	}
//	output, err := typescriptify.GenerateFromConnectionString(ctx, dsn, models, "User", config)
//
// # Subpackages
//
// For advanced use cases, consider using the subpackages directly:
//
//   - github.com/lucasefe/typescriptify/schema - Columns, foreign keys, casts and errors
//   - github.com/lucasefe/typescriptify/typemap - Column type and cast classification
//   - github.com/lucasefe/typescriptify/relation - Foreign key resolution and naming
//   - github.com/lucasefe/typescriptify/generator - Recursive interface generation
//   - github.com/lucasefe/typescriptify/introspect - MySQL introspection with functional options
//   - github.com/lucasefe/typescriptify/registry - Model metadata and YAML discovery
//   - github.com/lucasefe/typescriptify/snapshot - Offline schema snapshots
//   - github.com/lucasefe/typescriptify/config - Command configuration
//
// # Custom Type Mapping
//
// You can customize how column types are mapped to TypeScript types:
//
//	config := &typescriptify.Config{
//	    TypeMappings: map[string]string{
//	        "smallint": "boolean",
//	        "polygon":  "GeoJSON",
//	    },
//	}
package typescriptify
