package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/lucasefe/typescriptify/config"
	"github.com/lucasefe/typescriptify/generator"
	"github.com/lucasefe/typescriptify/introspect"
	"github.com/lucasefe/typescriptify/snapshot"
)

// ErrNoSource is returned when neither a DSN nor a snapshot is configured.
var ErrNoSource = errors.New("a --dsn or --snapshot is required")

// openSource returns the configured schema source. The returned close
// function releases the database connection, if any.
func openSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (generator.Source, func(), error) {
	if cfg.Snapshot != "" {
		s, err := snapshot.Load(cfg.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using snapshot", zap.String("path", cfg.Snapshot), zap.Int("tables", len(s.Tables)))
		return s, func() {}, nil
	}

	db, src, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return src, func() { db.Close() }, nil
}

type closer interface {
	Close() error
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (closer, *introspect.Introspector, error) {
	if cfg.DSN == "" {
		return nil, nil, ErrNoSource
	}

	db, err := introspect.Open(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("connected to database")

	return db, introspect.New(db, cfg.IntrospectOptions(logger)...), nil
}
