// Package introspect reads column and foreign key metadata from a MySQL
// database.
//
// Basic usage:
//
//	db, err := introspect.Open(ctx, "app:secret@tcp(localhost:3306)/shop")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	src := introspect.New(db, introspect.WithExcludeTables("migrations"))
//	columns, err := src.Columns(ctx, "users")
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/lucasefe/typescriptify/schema"
)

// DialectMySQL is the dialect name reported for MySQL connections.
const DialectMySQL = "mysql"

// Introspector reads table metadata through a *sql.DB. It is safe for
// concurrent use.
type Introspector struct {
	db   *sql.DB
	opts *options
}

// New creates an Introspector on db.
func New(db *sql.DB, opts ...Option) *Introspector {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Introspector{db: db, opts: o}
}

// Dialect returns the dialect of the connection.
func (i *Introspector) Dialect() string {
	return i.opts.dialect
}

func (i *Introspector) excluded(table string) bool {
	return slices.Contains(i.opts.excludeTables, table)
}

// Tables lists the base tables of the database, sorted by name, without
// excluded tables.
func (i *Introspector) Tables(ctx context.Context) ([]string, error) {
	query := `
		SELECT TABLE_NAME
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ` + i.schemaPredicate() + ` AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`

	rows, err := i.db.QueryContext(ctx, query, i.schemaArgs()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schema.FilterTables(tables, i.opts.excludeTables), nil
}

// Columns returns the columns of table in declaration order.
func (i *Introspector) Columns(ctx context.Context, table string) ([]schema.Column, error) {
	if i.excluded(table) {
		return nil, nil
	}

	query := "SHOW COLUMNS FROM " + i.qualifiedTable(table)
	i.opts.logger.Debug("introspecting columns", zap.String("table", table))

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var null string
		var key, extra sql.NullString
		var columnDefault sql.NullString

		err := rows.Scan(
			&col.Name,
			&col.RawType,
			&null,
			&key,
			&columnDefault,
			&extra,
		)
		if err != nil {
			return nil, err
		}

		col.Nullable = null == "YES"
		col.Key = key.String
		col.Extra = extra.String
		if columnDefault.Valid {
			col.Default = &columnDefault.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// ForeignKeys returns the foreign keys declared on table. Constraints that
// reference the same table are merged into one entry, in the order the
// referenced tables are first seen.
func (i *Introspector) ForeignKeys(ctx context.Context, table string) ([]schema.ForeignKey, error) {
	if i.excluded(table) {
		return nil, nil
	}

	query := `
		SELECT
			CONSTRAINT_NAME,
			COLUMN_NAME,
			REFERENCED_TABLE_NAME
		FROM information_schema.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = ` + i.schemaPredicate() + `
			AND TABLE_NAME = ?
			AND REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY CONSTRAINT_NAME, ORDINAL_POSITION
	`
	i.opts.logger.Debug("introspecting foreign keys", zap.String("table", table))

	rows, err := i.db.QueryContext(ctx, query, append(i.schemaArgs(), table)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foreignKeys []schema.ForeignKey
	index := make(map[string]int)
	for rows.Next() {
		var constraint, column, foreignTable string
		if err := rows.Scan(&constraint, &column, &foreignTable); err != nil {
			return nil, err
		}

		pos, ok := index[foreignTable]
		if !ok {
			pos = len(foreignKeys)
			index[foreignTable] = pos
			foreignKeys = append(foreignKeys, schema.ForeignKey{ForeignTable: foreignTable})
		}
		if !foreignKeys[pos].HasLocalColumn(column) {
			foreignKeys[pos].LocalColumns = append(foreignKeys[pos].LocalColumns, column)
		}
	}

	return foreignKeys, rows.Err()
}

func (i *Introspector) schemaPredicate() string {
	if i.opts.database != "" {
		return "?"
	}
	return "DATABASE()"
}

func (i *Introspector) schemaArgs() []any {
	if i.opts.database != "" {
		return []any{i.opts.database}
	}
	return nil
}

func (i *Introspector) qualifiedTable(table string) string {
	if i.opts.database != "" {
		return QuoteIdentifier(i.opts.database) + "." + QuoteIdentifier(table)
	}
	return QuoteIdentifier(table)
}

// QuoteIdentifier quotes a MySQL identifier with backticks, doubling any
// embedded backtick.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// DetectDialect returns the dialect a connection string refers to. URL
// style strings report their scheme. Anything else is a MySQL DSN.
func DetectDialect(dsn string) string {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok || scheme == "" || strings.ContainsAny(scheme, "@/(:") {
		return DialectMySQL
	}
	return strings.ToLower(scheme)
}

// ParseDSN validates a MySQL connection string. An optional "mysql://"
// prefix is accepted.
func ParseDSN(dsn string) (*mysql.Config, error) {
	if dialect := DetectDialect(dsn); dialect != DialectMySQL {
		return nil, &schema.UnsupportedConnectionError{Connection: dialect, Supported: []string{DialectMySQL}}
	}

	cfg, err := mysql.ParseDSN(strings.TrimPrefix(dsn, "mysql://"))
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}
	return cfg, nil
}

// Open connects to the MySQL database described by dsn and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
