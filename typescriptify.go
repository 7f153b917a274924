package typescriptify

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lucasefe/typescriptify/generator"
	"github.com/lucasefe/typescriptify/introspect"
	"github.com/lucasefe/typescriptify/registry"
	"github.com/lucasefe/typescriptify/relation"
	"github.com/lucasefe/typescriptify/schema"
)

// Config controls generation through the top-level helpers.
type Config struct {
	// IncludeHidden includes attributes the model marks as hidden.
	IncludeHidden bool
	// IncludeRelations generates nested interfaces for foreign keys.
	IncludeRelations bool
	// CaseStyle is the property name case style. Empty means CaseDefault.
	CaseStyle relation.CaseStyle
	// ExcludeTables are tables introspection ignores.
	ExcludeTables []string
	// TypeMappings maps raw column type prefixes to TypeScript types.
	TypeMappings map[string]string
	// Logger receives debug output. Nil disables logging.
	Logger *zap.Logger
}

func (c *Config) generatorOptions() []generator.Option {
	opts := []generator.Option{
		generator.WithIncludeHidden(c.IncludeHidden),
		generator.WithIncludeRelations(c.IncludeRelations),
		generator.WithLogger(c.Logger),
	}
	if c.CaseStyle != "" {
		opts = append(opts, generator.WithCaseStyle(c.CaseStyle))
	}
	if len(c.TypeMappings) > 0 {
		opts = append(opts, generator.WithTypeMappings(c.TypeMappings))
	}
	return opts
}

// GenerateFromConnection generates the interfaces of model from an open
// MySQL connection.
func GenerateFromConnection(ctx context.Context, db *sql.DB, models *registry.Registry, model schema.ModelID, config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}

	src := introspect.New(db,
		introspect.WithExcludeTables(config.ExcludeTables...),
		introspect.WithLogger(config.Logger),
	)

	output, err := generator.New(src, models, config.generatorOptions()...).Generate(ctx, model)
	if err != nil {
		return "", fmt.Errorf("failed to generate interfaces: %w", err)
	}
	return output, nil
}

// GenerateFromConnectionString connects to dsn and generates the interfaces
// of model.
func GenerateFromConnectionString(ctx context.Context, dsn string, models *registry.Registry, model schema.ModelID, config *Config) (string, error) {
	db, err := introspect.Open(ctx, dsn)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return GenerateFromConnection(ctx, db, models, model, config)
}

// WriteToFile generates the interfaces of model and writes them to filename.
func WriteToFile(ctx context.Context, db *sql.DB, models *registry.Registry, model schema.ModelID, filename string, config *Config) error {
	output, err := GenerateFromConnection(ctx, db, models, model, config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(output+"\n"), 0644)
}

// WriteToFileFromConnectionString connects to dsn, generates the interfaces
// of model and writes them to filename.
func WriteToFileFromConnectionString(ctx context.Context, dsn string, models *registry.Registry, model schema.ModelID, filename string, config *Config) error {
	db, err := introspect.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	return WriteToFile(ctx, db, models, model, filename, config)
}
