package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/listkit/internal/cache"
	"github.com/jask/listkit/internal/database/repository"
	"github.com/jask/listkit/internal/service"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo transactions",
		Long: `Insert demo transactions spread over the last four months.

The cached feed snapshot is dropped so the next launch loads the new rows.

Example:
  listkit seed --count 120`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			rootOpts.useStderrLogging()
			ctx := cmd.Context()

			db, err := rootOpts.openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			txRepo := repository.NewTransactionRepo(db)
			seeder := &service.Seeder{
				Accounts:     repository.NewAccountRepo(db),
				Categories:   repository.NewCategoryRepo(db),
				Transactions: txRepo,
			}
			if err := seeder.Seed(ctx, count); err != nil {
				return err
			}
			total, err := txRepo.Count(ctx, repository.TransactionFilters{})
			if err != nil {
				return fmt.Errorf("count transactions: %w", err)
			}

			snapshots, err := cache.New[repository.Transaction](repository.NewSnapshotRepo(db), feedCacheKey, 0)
			if err != nil {
				return err
			}
			if err := snapshots.Clear(ctx); err != nil {
				return fmt.Errorf("clear feed cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d transactions (%d total)\n", count, total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 60, "number of transactions")
	return cmd
}
