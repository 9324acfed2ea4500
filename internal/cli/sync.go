package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rebuild the SQLite mirror from the catalog file",
	Long: `Sync replaces the contents of the SQLite mirror with the foods and
cuisines currently in the catalog file. The file is never modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		svc, closeSvc, err := newService(ctx, true)
		if err != nil {
			return err
		}
		defer closeSvc()

		result, err := svc.Sync(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d foods in %d cuisines from %s\n", result.Foods, result.Cuisines, result.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
