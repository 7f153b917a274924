//go:build ignore

// This file demonstrates using the typescriptify packages without a live
// database, from an in-memory schema and a saved snapshot.
// Run with: go run library.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lucasefe/typescriptify/generator"
	"github.com/lucasefe/typescriptify/registry"
	"github.com/lucasefe/typescriptify/relation"
	"github.com/lucasefe/typescriptify/schema"
	"github.com/lucasefe/typescriptify/snapshot"
)

func main() {
	ctx := context.Background()

	models := registry.MustNew(
		registry.Model{
			Name:   `App\Models\User`,
			Hidden: []string{"password"},
			Dates:  []string{"email_verified_at"},
			Casts:  map[string]string{"is_admin": "boolean"},
		},
		registry.Model{Name: `App\Models\Team`},
	)

	s := snapshot.New("mysql").
		AddTable("users", []schema.Column{
			{Name: "id", RawType: "bigint unsigned"},
			{Name: "email", RawType: "varchar(255)"},
			{Name: "password", RawType: "varchar(255)"},
			{Name: "is_admin", RawType: "tinyint"},
			{Name: "email_verified_at", RawType: "timestamp", Nullable: true},
			{Name: "status", RawType: "enum('active','banned')"},
			{Name: "team_id", RawType: "bigint unsigned", Nullable: true},
		}, schema.ForeignKey{LocalColumns: []string{"team_id"}, ForeignTable: "teams"}).
		AddTable("teams", []schema.Column{
			{Name: "id", RawType: "bigint unsigned"},
			{Name: "name", RawType: "varchar(100)"},
			{Name: "settings", RawType: "json", Nullable: true},
		})

	fmt.Println("=== Example 1: Flat interface ===")
	flat(ctx, s, models)

	fmt.Println("\n=== Example 2: Relations and camel case ===")
	withRelations(ctx, s, models)

	fmt.Println("\n=== Example 3: Custom type mapping ===")
	customTypeMapping(ctx, s, models)

	fmt.Println("\n=== Example 4: Snapshot round trip ===")
	snapshotRoundTrip(ctx, s, models)
}

func flat(ctx context.Context, s *snapshot.Schema, models *registry.Registry) {
	out, err := generator.New(s, models).Generate(ctx, `App\Models\User`)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Println(out)
}

func withRelations(ctx context.Context, s *snapshot.Schema, models *registry.Registry) {
	gen := generator.New(s, models,
		generator.WithIncludeRelations(true),
		generator.WithCaseStyle(relation.CaseCamel),
	)

	doc, err := gen.Document(ctx, `App\Models\User`)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	for _, block := range doc.Blocks {
		fmt.Printf("// %s (%d fields)\n", block.Model, len(block.Fields))
	}
	fmt.Println(doc)
}

func customTypeMapping(ctx context.Context, s *snapshot.Schema, models *registry.Registry) {
	gen := generator.New(s, models,
		generator.WithTypeMappings(map[string]string{
			"bigint": "string", // ids beyond 2^53 lose precision as numbers
			"json":   "Record<string, string>",
		}),
	)

	out, err := gen.Generate(ctx, `App\Models\Team`)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Println(out)
}

func snapshotRoundTrip(ctx context.Context, s *snapshot.Schema, models *registry.Registry) {
	dir, err := os.MkdirTemp("", "typescriptify")
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "schema.msgpack")
	if err := snapshot.Save(path, s); err != nil {
		log.Printf("Error: %v", err)
		return
	}

	loaded, err := snapshot.Load(path)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}

	all, err := generator.New(loaded, models).GenerateAll(ctx, models.Models())
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	for _, id := range models.Models() {
		fmt.Printf("// %s\n%s\n", id, all[id])
	}
}
