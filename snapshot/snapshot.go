// Package snapshot stores a captured database schema so interfaces can be
// generated without a live connection.
//
// A Schema is itself a generator source:
//
//	s, err := snapshot.Load("schema.msgpack")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gen := generator.New(s, registry)
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lucasefe/typescriptify/schema"
)

// Version is the snapshot format version written by Write.
const Version = 1

// ErrUnsupportedVersion is returned when reading a snapshot written in a
// newer format.
var ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

// Source is the schema reader a snapshot is captured from.
type Source interface {
	Dialect() string
	Columns(ctx context.Context, table string) ([]schema.Column, error)
	ForeignKeys(ctx context.Context, table string) ([]schema.ForeignKey, error)
}

// Table holds the captured definition of one table.
type Table struct {
	Columns     []schema.Column     `msgpack:"columns"`
	ForeignKeys []schema.ForeignKey `msgpack:"foreign_keys,omitempty"`
}

// Schema is a captured set of tables. It is safe for concurrent reads.
type Schema struct {
	Version int `msgpack:"version"`
	// Connection is the dialect the snapshot was captured from.
	Connection string            `msgpack:"dialect"`
	Tables     map[string]*Table `msgpack:"tables"`
}

// New creates an empty snapshot for the given dialect.
func New(dialect string) *Schema {
	return &Schema{
		Version:    Version,
		Connection: dialect,
		Tables:     make(map[string]*Table),
	}
}

// AddTable records a table, replacing any previous definition.
func (s *Schema) AddTable(name string, columns []schema.Column, foreignKeys ...schema.ForeignKey) *Schema {
	if s.Tables == nil {
		s.Tables = make(map[string]*Table)
	}
	s.Tables[name] = &Table{Columns: columns, ForeignKeys: foreignKeys}
	return s
}

// Dialect returns the dialect the snapshot was captured from.
func (s *Schema) Dialect() string {
	return s.Connection
}

// TableNames returns the captured table names sorted alphabetically.
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Columns returns the columns of table. A table missing from the snapshot
// has no columns.
func (s *Schema) Columns(_ context.Context, table string) ([]schema.Column, error) {
	t, ok := s.Tables[table]
	if !ok {
		return nil, nil
	}
	return slices.Clone(t.Columns), nil
}

// ForeignKeys returns the foreign keys of table.
func (s *Schema) ForeignKeys(_ context.Context, table string) ([]schema.ForeignKey, error) {
	t, ok := s.Tables[table]
	if !ok {
		return nil, nil
	}
	return slices.Clone(t.ForeignKeys), nil
}

// Capture reads the given tables from src into a new snapshot.
func Capture(ctx context.Context, src Source, tables []string) (*Schema, error) {
	s := New(src.Dialect())

	for _, table := range tables {
		columns, err := src.Columns(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to capture columns for table %s: %w", table, err)
		}

		foreignKeys, err := src.ForeignKeys(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("failed to capture foreign keys for table %s: %w", table, err)
		}

		s.AddTable(table, columns, foreignKeys...)
	}

	return s, nil
}

// Write encodes s to w.
func Write(w io.Writer, s *Schema) error {
	if s.Version == 0 {
		s.Version = Version
	}
	if err := msgpack.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r.
func Read(r io.Reader) (*Schema, error) {
	var s Schema
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version > Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	if s.Tables == nil {
		s.Tables = make(map[string]*Table)
	}
	return &s, nil
}

// Save writes s to the file at path.
func Save(path string, s *Schema) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads the snapshot file at path.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	return Read(f)
}
