package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/listkit/internal/service"
)

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:          "reset",
		Short:        "Delete all transactions, categories and cached lists",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset %s without --yes", rootOpts.cfg.Database.Path)
			}
			rootOpts.useStderrLogging()
			ctx := cmd.Context()

			db, err := rootOpts.openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := (&service.MaintenanceService{DB: db}).Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
