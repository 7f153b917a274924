package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/lucasefe/typescriptify/registry"
)

func modelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "models",
		Usage: "List the discovered models and their tables",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			models, err := registry.Discover(ctx, cfg.ModelsDir)
			if err != nil {
				return fmt.Errorf("failed to load models: %w", err)
			}

			w := tabwriter.NewWriter(cmd.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tTABLE")
			for _, id := range models.Models() {
				table, _ := models.TableForModel(id)
				fmt.Fprintf(w, "%s\t%s\n", id, table)
			}
			return w.Flush()
		},
	}
}
