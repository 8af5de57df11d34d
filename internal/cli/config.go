package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/listkit/internal/config"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and LISTKIT_ env
overrides are applied.

With --save the effective values (including --db) are written to the config file.

Example:
  listkit config --db ~/ledger.db --save`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			out := cmd.OutOrStdout()
			if save {
				if err := config.Save(cfg); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %s\n", config.Path())
				return nil
			}
			fmt.Fprintf(out, "config file:      %s\n", config.Path())
			fmt.Fprintf(out, "database.path:    %s\n", cfg.Database.Path)
			fmt.Fprintf(out, "feed.page_size:   %d\n", cfg.Feed.PageSize)
			fmt.Fprintf(out, "feed.max_count:   %d\n", cfg.Feed.MaxCount)
			fmt.Fprintf(out, "cache.enabled:    %t\n", cfg.Cache.Enabled)
			fmt.Fprintf(out, "cache.ttl:        %s\n", cfg.Cache.TTL)
			fmt.Fprintf(out, "ui.timezone:      %s\n", cfg.UI.Timezone)
			fmt.Fprintf(out, "log.path:         %s\n", cfg.Log.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "write the effective configuration to the config file")
	return cmd
}
