package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jask/listkit/internal/database/repository"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "show <id>",
		Short:        "Print one transaction",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootOpts.useStderrLogging()
			ctx := cmd.Context()

			db, err := rootOpts.openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			tx, err := repository.NewTransactionRepo(db).Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("get transaction: %w", err)
			}
			if tx == nil {
				return fmt.Errorf("transaction %s not found", args[0])
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%s\n", tx.ID)
			fmt.Fprintf(w, "Date\t%s\n", tx.Date.In(rootOpts.cfg.UI.Location()).Format("2006-01-02"))
			fmt.Fprintf(w, "Description\t%s\n", tx.Label())
			fmt.Fprintf(w, "Amount\t%s%.2f\n", rootOpts.cfg.UI.CurrencySymbol, float64(tx.AmountCents)/100)
			fmt.Fprintf(w, "Status\t%s\n", tx.Status)
			return w.Flush()
		},
	}
}
