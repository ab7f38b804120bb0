package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"taginput/internal/config"
	"taginput/internal/domain"
	"taginput/internal/eventbus"
	"taginput/internal/lookup"
	"taginput/internal/ui"
)

const readyMarker = "__READY__"

// options holds the persistent flags shared by every command
type options struct {
	configPath string
	catalog    string
	database   string
	debounceMs int
	output     string
	logFile    string
	verbose    bool

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "taginput",
		Short: "Pick recipients with a tag-style input",
		Long: `taginput is a terminal tag input for email recipients.

Type to search the contact catalog, press Enter or Tab to add the highlighted
suggestion or the typed text. Values that are not valid emails are kept and
marked. The final selection is printed on exit.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logFile, opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.catalog, "catalog", "", "contact catalog file (yaml, json, toml or one email per line)")
	flags.StringVar(&opts.database, "db", "", "sqlite contacts database, switches the lookup source to sqlite")
	flags.IntVar(&opts.debounceMs, "debounce", -1, "lookup debounce in milliseconds")
	flags.StringVarP(&opts.output, "output", "o", "json", "selection output format (json, yaml)")
	flags.StringVar(&opts.logFile, "log-file", "taginput.log", "log file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCatalogCmd(opts), newConfigCmd(opts))
	return rootCmd
}

// newLogger writes JSON logs to path, the terminal belongs to the TUI
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(opts *options, bus eventbus.EventBus) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.catalog != "" {
		cfg.Lookup.Catalog = opts.catalog
	}
	if opts.database != "" {
		cfg.Lookup.Database = opts.database
		cfg.Lookup.Source = config.SourceSQLite
	}
	if opts.debounceMs >= 0 {
		cfg.DebounceMs = opts.debounceMs
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

func runTUI(ctx context.Context, opts *options, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := opts.logger
	bus := eventbus.New(logger)
	defer bus.Close()

	cfg, svc, err := loadConfig(opts, bus)
	if err != nil {
		return err
	}
	logger.Info("config loaded",
		zap.String("path", svc.Path()),
		zap.String("source", cfg.Lookup.Source))

	src, err := lookup.Open(ctx, cfg.Lookup, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	service := lookup.NewService(src, cfg.Lookup.CacheSize, cfg.Lookup.CacheTTL(), bus, logger)

	model, err := ui.NewModel(bus, cfg, service, logger)
	if err != nil {
		return err
	}

	var programOpts []tea.ProgramOption
	programOpts = append(programOpts, tea.WithContext(ctx))
	if os.Getenv("TAGINPUT_E2E_TEST") != "1" {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, programOpts...)
	model.SetProgram(p)

	// Forward bus events the UI cares about
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
		}
	}
	bus.Subscribe(eventbus.EventCatalogReloaded, forward)
	bus.Subscribe(eventbus.EventError, forward)
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	var watchers sync.WaitGroup
	if cfg.Lookup.Watch && cfg.Lookup.Catalog != "" {
		watchers.Add(1)
		go func() {
			defer watchers.Done()
			err := lookup.WatchCatalog(ctx, cfg.Lookup.Catalog, logger, func(options []domain.Option) {
				if err := src.Reload(ctx, options); err != nil {
					bus.Publish(eventbus.ErrorEvent{Message: "catalog reload failed", Err: err})
					return
				}
				service.Purge()
				bus.Publish(eventbus.CatalogReloadedEvent{Path: cfg.Lookup.Catalog, Count: len(options)})
			})
			if err != nil {
				logger.Error("catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	if os.Getenv("TAGINPUT_E2E_TEST") == "1" {
		fmt.Fprintln(stdout, readyMarker)
	}

	logger.Info("starting UI")
	_, runErr := p.Run()
	interrupted := ctx.Err() != nil
	cancel()
	watchers.Wait()
	bus.Close()
	close(eventChan)
	if runErr != nil && !interrupted {
		return fmt.Errorf("error running program: %w", runErr)
	}
	logger.Info("UI exited", zap.Int("selected", len(model.Selection())))

	return printSelection(stdout, model.Selection(), opts.output)
}

// printSelection writes the final selection in the requested format
func printSelection(w io.Writer, sel domain.Selection, format string) error {
	if sel == nil {
		sel = domain.Selection{}
	}
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sel)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(sel)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
