package generator

import (
	"go.uber.org/zap"

	"github.com/lucasefe/typescriptify/relation"
	"github.com/lucasefe/typescriptify/typemap"
)

// Option configures generation behavior.
type Option func(*options)

type options struct {
	includeHidden    bool
	includeRelations bool
	caseStyle        relation.CaseStyle
	typeMapper       typemap.TypeMapper
	logger           *zap.Logger
	concurrency      int
}

const defaultConcurrency = 4

func defaultOptions() *options {
	return &options{
		caseStyle:   relation.CaseDefault,
		typeMapper:  typemap.NewMySQLTypeMapper(nil),
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
	}
}

// WithIncludeHidden includes the columns a model marks as hidden.
// Hidden columns are omitted by default.
func WithIncludeHidden(include bool) Option {
	return func(o *options) {
		o.includeHidden = include
	}
}

// WithIncludeRelations turns foreign key columns into nested interfaces.
// When disabled (the default) foreign keys are emitted as scalar columns.
func WithIncludeRelations(include bool) Option {
	return func(o *options) {
		o.includeRelations = include
	}
}

// WithCaseStyle sets the case style applied to property names.
func WithCaseStyle(style relation.CaseStyle) Option {
	return func(o *options) {
		o.caseStyle = style
	}
}

// WithTypeMapper sets a custom mapper for raw column types.
// If not specified, uses the default MySQL type mapper.
func WithTypeMapper(mapper typemap.TypeMapper) Option {
	return func(o *options) {
		if mapper != nil {
			o.typeMapper = mapper
		}
	}
}

// WithTypeMappings provides custom raw type prefixes as a simple map.
// This is a convenience alternative to WithTypeMapper.
func WithTypeMappings(mappings map[string]string) Option {
	return func(o *options) {
		o.typeMapper = typemap.NewMySQLTypeMapper(mappings)
	}
}

// WithLogger sets the logger used for debug tracing of the recursion.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency limits how many models GenerateAll processes at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}
