package main

import (
	"fmt"
	"log/slog"
	"os"

	"cleaning-feedback-bot/cmd/bootstrap"
	"cleaning-feedback-bot/internal/usecase/commands"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump users and feedback into an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				exporter *commands.Exporter
				logger   *slog.Logger
			)
			ctx := cmd.Context()
			stop, err := startOnce(ctx, bootstrap.ExportModule, fx.Populate(&exporter, &logger))
			if err != nil {
				return err
			}
			defer stop()

			data, err := exporter.Build(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			logger.Info("export written", slog.String("path", out), slog.Int("bytes", len(data)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", commands.ExportFileName, "output file")
	return cmd
}
