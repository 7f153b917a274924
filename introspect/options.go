package introspect

import "go.uber.org/zap"

// Option configures introspection behavior.
type Option func(*options)

type options struct {
	database      string
	dialect       string
	excludeTables []string
	logger        *zap.Logger
}

func defaultOptions() *options {
	return &options{
		dialect: DialectMySQL,
		logger:  zap.NewNop(),
	}
}

// WithDatabase specifies which database (MySQL schema) to introspect.
// If not specified, the connection's current database is used.
func WithDatabase(name string) Option {
	return func(o *options) {
		o.database = name
	}
}

// WithDialect overrides the dialect reported to the generator.
// If not specified, defaults to "mysql".
func WithDialect(dialect string) Option {
	return func(o *options) {
		o.dialect = dialect
	}
}

// WithExcludeTables specifies tables to exclude from introspection.
// Excluded tables report no columns and no foreign keys.
func WithExcludeTables(tables ...string) Option {
	return func(o *options) {
		o.excludeTables = tables
	}
}

// WithLogger sets the logger used for query tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
