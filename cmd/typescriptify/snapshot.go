package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/lucasefe/typescriptify/registry"
	"github.com/lucasefe/typescriptify/snapshot"
)

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Capture the schema of the model tables to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Usage:    "snapshot file to write",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "all-tables",
				Usage: "capture every table in the database, not only model tables",
			},
		},
		Action: runSnapshot,
	}
}

func runSnapshot(ctx context.Context, cmd *cli.Command) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Level())
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	db, src, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	var tables []string
	if cmd.Bool("all-tables") {
		tables, err = src.Tables(ctx)
		if err != nil {
			return err
		}
	} else {
		models, err := registry.Discover(ctx, cfg.ModelsDir)
		if err != nil {
			return fmt.Errorf("failed to load models: %w", err)
		}
		tables = models.Tables()
	}

	s, err := snapshot.Capture(ctx, src, tables)
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if err := snapshot.Save(out, s); err != nil {
		return err
	}
	logger.Info("snapshot written", zap.String("path", out), zap.Int("tables", len(s.Tables)))
	return nil
}
