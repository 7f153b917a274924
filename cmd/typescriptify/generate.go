package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/lucasefe/typescriptify/config"
	"github.com/lucasefe/typescriptify/generator"
	"github.com/lucasefe/typescriptify/registry"
	"github.com/lucasefe/typescriptify/schema"
)

// ErrNoModels is returned when generate is given nothing to generate.
var ErrNoModels = errors.New("no models given; pass model names or --all")

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Generate interfaces for models",
		ArgsUsage: "[models...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "generate every registered model",
			},
			&cli.BoolFlag{
				Name:  "include-hidden",
				Usage: "include hidden model attributes",
			},
			&cli.BoolFlag{
				Name:    "include-relations",
				Aliases: []string{"r"},
				Usage:   "generate nested interfaces for foreign keys",
			},
			&cli.StringFlag{
				Name:  "case",
				Usage: "property name case (default, camel, kebab, snake, pascal)",
			},
			&cli.StringSliceFlag{
				Name:  "type-mapping",
				Usage: "custom column type mapping as prefix=type (repeatable)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "models generated at once with --all",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file (default: stdout)",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "regenerate when model files change",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
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

	src, closeSource, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	run := func() error {
		return generateOnce(ctx, cmd, cfg, src, logger)
	}

	if err := run(); err != nil {
		return err
	}
	if !cmd.Bool("watch") {
		return nil
	}

	logger.Info("watching models", zap.String("dir", cfg.ModelsDir))
	return registry.Watch(ctx, cfg.ModelsDir, func() {
		if err := run(); err != nil {
			logger.Error("regeneration failed", zap.Error(err))
			return
		}
		logger.Info("regenerated")
	})
}

func generateOnce(ctx context.Context, cmd *cli.Command, cfg *config.Config, src generator.Source, logger *zap.Logger) error {
	models, err := registry.Discover(ctx, cfg.ModelsDir)
	if err != nil {
		return fmt.Errorf("failed to load models: %w", err)
	}
	logger.Debug("discovered models", zap.Int("count", models.Len()))

	var ids []schema.ModelID
	if cmd.Bool("all") {
		ids = models.Models()
	} else {
		for _, arg := range cmd.Args().Slice() {
			ids = append(ids, schema.ModelID(arg))
		}
	}
	if len(ids) == 0 {
		return ErrNoModels
	}

	gen := generator.New(src, models, cfg.GeneratorOptions(logger)...)
	docs, err := gen.DocumentAll(ctx, ids)
	if err != nil {
		return err
	}
	output := generator.Merge(docs...).String() + "\n"

	if cfg.Output == "" {
		_, err := fmt.Fprint(cmd.Root().Writer, output)
		return err
	}

	if err := os.WriteFile(cfg.Output, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", cfg.Output, err)
	}
	logger.Info("interfaces written", zap.String("path", cfg.Output), zap.Int("bytes", len(output)))
	return nil
}
