package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taginput/internal/config"
	"taginput/internal/lookup"
)

func newCatalogCmd(opts *options) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the contact catalog",
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a catalog file into the sqlite contacts database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts, nil)
			if err != nil {
				return err
			}
			options, err := lookup.LoadCatalog(args[0])
			if err != nil {
				return err
			}

			db, err := lookup.OpenSQLite(cfg.Lookup.Database, cfg.Lookup.Limit)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Import(cmd.Context(), options)
			if err != nil {
				return err
			}
			total, err := db.Count(cmd.Context())
			if err != nil {
				return err
			}
			opts.logger.Info("catalog imported",
				zap.String("file", args[0]),
				zap.Int("imported", n),
				zap.Int("total", total))
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contacts (%d total)\n", n, total)
			return nil
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Query the configured lookup source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			cfg, _, err := loadConfig(opts, nil)
			if err != nil {
				return err
			}
			// no artificial latency for one-shot queries
			cfg.Lookup.LatencyMs = 0

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			src, err := lookup.Open(ctx, cfg.Lookup, opts.logger)
			if err != nil {
				return err
			}
			defer src.Close()

			found, err := src.Search(ctx, term)
			if err != nil {
				return err
			}
			return printSelection(cmd.OutOrStdout(), found, opts.output)
		},
	}

	catalogCmd.AddCommand(importCmd, searchCmd)
	return catalogCmd
}

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService(opts.configPath)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", svc.Path())
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
