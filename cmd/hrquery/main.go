package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/hrquery/config"
	"github.com/spektr-org/hrquery/logging"
	"github.com/spektr-org/hrquery/store"
)

// ============================================================================
// HRQUERY CLI - Plain-English questions over an HR database
// ============================================================================

const version = "0.1.0"

// errExit signals a failure whose message was already printed.
var errExit = errors.New("exit status 1")

// app carries global flags and the state PersistentPreRunE builds from them.
type app struct {
	configPath string
	database   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "hrquery",
		Short: "hrquery - ask an HR database questions in plain English",
		Long: `hrquery answers a fixed set of HR questions against a SQLite database.

Recognized questions:
  show me all employees in <department>
  who is the manager of <department>
  list all employees hired after <YYYY-MM-DD>
  what is the total salary expense for <department>

Run "hrquery serve" to expose POST /chat over HTTP, or "hrquery ask" for a
one-shot answer on stdout.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Path to YAML config file")
	pf.StringVar(&a.database, "database", "", "Path to the SQLite database (overrides config and DATABASE)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newAskCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger for every subcommand
// except version.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.database != "" {
		cfg.Storage.Path = a.database
	}

	logger, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// openStore returns the configured database. A missing file prints the
// operator-facing message and yields errExit.
func (a *app) openStore(cmd *cobra.Command) (*store.SQLite, error) {
	st, err := store.New(a.cfg.Storage.Path,
		store.WithDriver(a.cfg.Storage.Driver),
		store.WithLogger(a.logger))
	if errors.Is(err, store.ErrDatabaseNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(),
			"Database '%s' not found. Please ensure it exists and contains required tables.\n",
			a.cfg.Storage.Path)
		return nil, errExit
	}
	return st, err
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
