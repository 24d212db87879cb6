package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petasbytes/genie-annotate/internal/config"
	"github.com/petasbytes/genie-annotate/internal/genie"
	"github.com/petasbytes/genie-annotate/internal/provider"
	"github.com/petasbytes/genie-annotate/internal/updater"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// spaceClient is what the commands need from the Genie API.
type spaceClient interface {
	updater.SpaceAPI
	ListSpaces(ctx context.Context) ([]genie.SpaceSummary, error)
}

// app holds flag values and process-wide collaborators shared by all commands.
type app struct {
	configPath string
	host       string
	timeout    time.Duration
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	newClient func(*config.Config) (spaceClient, error)
	newLogger func(level string, verbose bool) (*zap.Logger, error)
}

func newGenieClient(cfg *config.Config) (spaceClient, error) {
	c, err := provider.NewGenieClient(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "genie-annotate",
		Short: "Append column descriptions to a Databricks Genie space",
		Long: `genie-annotate edits the serialized_space document of a Genie space.

It fetches the space, appends a description to every column entry matching
the given table identifier and column name, and PATCHes the space back.

Authentication uses DATABRICKS_HOST and DATABRICKS_TOKEN, or host/token in
~/.genie-annotate.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ~/"+config.DefaultFileName+")")
	pf.StringVar(&a.host, "host", "", "workspace URL (overrides config and DATABRICKS_HOST)")
	pf.DurationVar(&a.timeout, "timeout", 0, "per-request timeout (overrides config)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newAnnotateCmd(a),
		newSampleCmd(a),
		newListCmd(a),
		newColumnsCmd(a),
		newSchemaCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup() error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.host != "" {
		cfg.Host = a.host
	}
	if a.timeout > 0 {
		cfg.Timeout = a.timeout.String()
	}
	a.cfg = cfg

	newLogger := a.newLogger
	if newLogger == nil {
		newLogger = buildLogger
	}
	logger, err := newLogger(cfg.Logging.Level, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

// buildLogger returns a no-op logger unless a level is configured or verbose is set.
func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	if level == "" && !verbose {
		return zap.NewNop(), nil
	}
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

// execRoot runs the command tree and flushes the logger whatever the outcome.
// Cobra skips post-run hooks when RunE fails, so the flush lives here.
func execRoot(ctx context.Context, a *app, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func main() {
	a := &app{newClient: newGenieClient}
	root := newRootCmd(a)

	// Ctrl-C / SIGTERM cancel in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execRoot(ctx, a, root); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nExiting...")
		} else {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		}
		os.Exit(1)
	}
}
