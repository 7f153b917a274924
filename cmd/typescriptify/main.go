package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lucasefe/typescriptify/config"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "typescriptify",
		Usage:     "Generate TypeScript interfaces from MySQL tables and model metadata",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "directory to search for .typescriptify.yaml",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "dsn",
				Usage: "MySQL connection string (user:pass@tcp(host:3306)/db)",
			},
			&cli.StringFlag{
				Name:    "models",
				Aliases: []string{"m"},
				Usage:   "directory of model YAML files",
			},
			&cli.StringFlag{
				Name:  "snapshot",
				Usage: "read the schema from a snapshot file instead of a database",
			},
			&cli.StringSliceFlag{
				Name:    "exclude-table",
				Aliases: []string{"x"},
				Usage:   "table to ignore during introspection (repeatable)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			generateCommand(),
			snapshotCommand(),
			modelsCommand(),
		},
	}
}

// settings resolves the configuration for a command: config file and
// environment first, then any flag set on the command line.
func settings(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("dir"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("dsn") {
		cfg.DSN = cmd.String("dsn")
	}
	if cmd.IsSet("models") {
		cfg.ModelsDir = cmd.String("models")
	}
	if cmd.IsSet("snapshot") {
		cfg.Snapshot = cmd.String("snapshot")
	}
	if cmd.IsSet("exclude-table") {
		cfg.ExcludeTables = cmd.StringSlice("exclude-table")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("case") {
		cfg.CaseStyle = cmd.String("case")
	}
	if cmd.IsSet("include-hidden") {
		cfg.IncludeHidden = cmd.Bool("include-hidden")
	}
	if cmd.IsSet("include-relations") {
		cfg.IncludeRelations = cmd.Bool("include-relations")
	}
	if cmd.IsSet("concurrency") {
		cfg.Concurrency = int(cmd.Int("concurrency"))
	}
	if cmd.IsSet("type-mapping") {
		mappings, err := parseTypeMappings(cmd.StringSlice("type-mapping"))
		if err != nil {
			return nil, err
		}
		if cfg.TypeMappings == nil {
			cfg.TypeMappings = make(map[string]string, len(mappings))
		}
		for prefix, target := range mappings {
			cfg.TypeMappings[prefix] = target
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseTypeMappings(values []string) (map[string]string, error) {
	mappings := make(map[string]string, len(values))
	for _, value := range values {
		prefix, target, ok := strings.Cut(value, "=")
		prefix, target = strings.TrimSpace(prefix), strings.TrimSpace(target)
		if !ok || prefix == "" || target == "" {
			return nil, fmt.Errorf("invalid type mapping %q (want prefix=type)", value)
		}
		mappings[prefix] = target
	}
	return mappings, nil
}

// newLogger writes development-style logs to stderr. Generated output goes
// to stdout or a file and never shares the log stream.
func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}
