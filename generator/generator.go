// Package generator renders TypeScript interfaces for registered models.
//
// A model's columns are read from a Source and classified into TypeScript
// types. With relations enabled, foreign key columns that point at other
// registered models become nested interface references and the related
// interfaces are generated too, each exactly once per run even when the
// relation graph has cycles.
//
// Basic usage:
//
//	gen := generator.New(source, registry, generator.WithIncludeRelations(true))
//	output, err := gen.Generate(ctx, "App\\Models\\User")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(output)
package generator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lucasefe/typescriptify/relation"
	"github.com/lucasefe/typescriptify/schema"
	"github.com/lucasefe/typescriptify/typemap"
)

// SupportedConnections lists the database dialects generation accepts.
var SupportedConnections = []string{"mysql"}

// Source provides the physical schema of a database.
// Implementations used with GenerateAll must be safe for concurrent use.
type Source interface {
	// Dialect names the database engine, e.g. "mysql".
	Dialect() string
	// Columns returns the columns of table in declaration order.
	Columns(ctx context.Context, table string) ([]schema.Column, error)
	// ForeignKeys returns the foreign key constraints declared on table,
	// one entry per referenced table.
	ForeignKeys(ctx context.Context, table string) ([]schema.ForeignKey, error)
}

// Registry provides model metadata.
type Registry interface {
	// TableForModel returns the table backing id, or an error wrapping
	// schema.ErrInvalidModel when id is not a known model.
	TableForModel(id schema.ModelID) (string, error)
	// ModelForTable returns the model stored in table.
	ModelForTable(table string) (schema.ModelID, bool)
	// HiddenAttributes returns the set of hidden attribute names of id.
	HiddenAttributes(id schema.ModelID) map[string]bool
	// CastSpec returns the cast declared for attribute on id.
	CastSpec(id schema.ModelID, attribute string) (schema.CastSpec, bool)
}

// Generator produces interface declarations. A Generator holds no per-run
// state and may be used concurrently.
type Generator struct {
	source   Source
	registry Registry
	opts     *options
}

// New creates a Generator reading from src and reg.
func New(src Source, reg Registry, opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Generator{source: src, registry: reg, opts: o}
}

// Generate renders the interface of id, preceded by every interface it
// transitively references when relations are enabled.
func (g *Generator) Generate(ctx context.Context, id schema.ModelID) (string, error) {
	doc, err := g.Document(ctx, id)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// Document generates the interface blocks of id without rendering them.
func (g *Generator) Document(ctx context.Context, id schema.ModelID) (*Document, error) {
	if err := g.validate(id); err != nil {
		return nil, err
	}

	r := &run{
		gen:       g,
		generated: make(map[schema.ModelID]string),
	}
	if _, err := r.visit(ctx, id); err != nil {
		return nil, err
	}

	return &Document{Blocks: r.blocks}, nil
}

// GenerateAll generates every model in ids concurrently. Each model is an
// independent run, so results are identical to calling Generate for each
// id in turn.
func (g *Generator) GenerateAll(ctx context.Context, ids []schema.ModelID) (map[schema.ModelID]string, error) {
	docs, err := g.DocumentAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make(map[schema.ModelID]string, len(ids))
	for i, id := range ids {
		results[id] = docs[i].String()
	}
	return results, nil
}

// DocumentAll is GenerateAll returning the documents in the order of ids.
func (g *Generator) DocumentAll(ctx context.Context, ids []schema.ModelID) ([]*Document, error) {
	docs := make([]*Document, len(ids))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.opts.concurrency)

	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			doc, err := g.Document(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to generate %s: %w", id, err)
			}
			docs[i] = doc
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// validate checks the model before the connection dialect.
func (g *Generator) validate(id schema.ModelID) error {
	if id == "" {
		return &schema.InvalidModelError{Model: id}
	}
	if _, err := g.registry.TableForModel(id); err != nil {
		if errors.Is(err, schema.ErrInvalidModel) {
			return err
		}
		return fmt.Errorf("failed to resolve table for %s: %w", id, err)
	}

	dialect := strings.ToLower(g.source.Dialect())
	if !slices.Contains(SupportedConnections, dialect) {
		return &schema.UnsupportedConnectionError{
			Connection: g.source.Dialect(),
			Supported:  SupportedConnections,
		}
	}
	return nil
}

// run is the state of one top-level generation.
type run struct {
	gen *Generator
	// generated maps every model visited so far to its interface name.
	generated map[schema.ModelID]string
	blocks    []InterfaceBlock
}

// visit emits the block of id after the blocks of any model it introduces.
// The model is registered before its columns are walked, so a relation
// back to it (directly or through a cycle) reuses the name instead of
// recursing.
func (r *run) visit(ctx context.Context, id schema.ModelID) (string, error) {
	name := InterfaceName(id)
	r.generated[id] = name

	table, err := r.gen.registry.TableForModel(id)
	if err != nil {
		return "", err
	}

	log := r.gen.opts.logger.With(zap.String("model", string(id)), zap.String("table", table))
	log.Debug("generating interface", zap.String("interface", name))

	columns, err := r.gen.source.Columns(ctx, table)
	if err != nil {
		return "", fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}

	var foreignKeys []schema.ForeignKey
	if r.gen.opts.includeRelations {
		foreignKeys, err = r.gen.source.ForeignKeys(ctx, table)
		if err != nil {
			return "", fmt.Errorf("failed to get foreign keys for table %s: %w", table, err)
		}
	}

	if !r.gen.opts.includeHidden {
		columns = schema.FilterHidden(columns, r.gen.registry.HiddenAttributes(id))
	}

	block := InterfaceBlock{Model: id, Name: name, Fields: make([]Field, 0, len(columns))}
	for _, column := range columns {
		field, err := r.field(ctx, id, column, foreignKeys, log)
		if err != nil {
			return "", err
		}
		block.Fields = append(block.Fields, field)
	}

	r.blocks = append(r.blocks, block)
	return name, nil
}

func (r *run) field(ctx context.Context, id schema.ModelID, column schema.Column, foreignKeys []schema.ForeignKey, log *zap.Logger) (Field, error) {
	style := r.gen.opts.caseStyle

	if r.gen.opts.includeRelations {
		target, ok, err := relation.Resolve(column.Name, foreignKeys, r.gen.registry)
		if err != nil {
			var unresolved *schema.UnresolvedRelationError
			if errors.As(err, &unresolved) {
				unresolved.Model = id
			}
			return Field{}, err
		}

		if ok {
			related, seen := r.generated[target]
			if seen {
				log.Debug("reusing interface", zap.String("column", column.Name), zap.String("related", string(target)))
			} else {
				related, err = r.visit(ctx, target)
				if err != nil {
					return Field{}, err
				}
			}

			return Field{
				Name:     relation.PredictName(column.Name, style),
				Type:     typemap.Type(related),
				Relation: target,
			}, nil
		}
	}

	return Field{
		Name: relation.FormatName(column.Name, style),
		Type: r.gen.columnType(id, column),
	}, nil
}

// columnType prefers a declared cast over the raw column type.
func (g *Generator) columnType(id schema.ModelID, column schema.Column) typemap.Type {
	if spec, ok := g.registry.CastSpec(id, column.Name); ok {
		return typemap.Nullable(typemap.CastType(spec), column.Nullable)
	}
	return g.opts.typeMapper.MapType(column.RawType, column.Nullable)
}

// InterfaceName returns the short name of a model identifier: the segment
// after its last namespace separator ("App\Models\User" -> "User").
func InterfaceName(id schema.ModelID) string {
	return id.BaseName()
}
