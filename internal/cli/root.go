package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/listkit/internal/config"
	"github.com/jask/listkit/internal/database"
	"github.com/jask/listkit/internal/database/repository"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Database string
	Status   string
	Month    string

	cfg config.Config
}

// NewRootCommand creates the listkit command. Without a subcommand it runs
// the terminal UI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "listkit",
		Short: "Browse transactions in a paginated, cached terminal list",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.Database != "" {
				cfg.Database.Path = opts.Database
			}
			opts.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides database.path)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "only show transactions with this status (posted, pending)")
	cmd.Flags().StringVar(&opts.Month, "month", "", "only show transactions from this month (YYYY-MM)")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// feedFilters turns the --status and --month flags into repository filters.
func (o *RootOptions) feedFilters() (repository.TransactionFilters, error) {
	var f repository.TransactionFilters
	switch o.Status {
	case "", "posted", "pending":
		f.Status = o.Status
	default:
		return f, fmt.Errorf("--status must be posted or pending, got %q", o.Status)
	}
	if o.Month != "" {
		m, err := time.Parse("2006-01", o.Month)
		if err != nil {
			return f, fmt.Errorf("--month must be YYYY-MM: %w", err)
		}
		f.Month = m
	}
	return f, nil
}

func (o *RootOptions) logLevel() slog.Level {
	if o.Verbose {
		return slog.LevelDebug
	}
	return o.cfg.Log.SlogLevel()
}

// useStderrLogging is for the non-interactive commands.
func (o *RootOptions) useStderrLogging() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: o.logLevel()})
	slog.SetDefault(slog.New(handler))
}

// openDatabase migrates and opens the configured database and makes sure the
// default categories exist.
func (o *RootOptions) openDatabase(ctx context.Context) (*sql.DB, error) {
	path := o.cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	slog.Debug("opening database", "path", path)
	db, err := database.OpenMigrated(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}
