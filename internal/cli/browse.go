package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/breadcrumb/foodseed/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long: `Browse opens a terminal browser over the SQLite mirror. The mirror is
rebuilt from the catalog file on start and again whenever the file changes,
so foods added by a concurrent generate show up without restarting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if !isTerminal(cmd.OutOrStdout()) {
			return errNotTerminal
		}

		svc, closeSvc, err := newService(ctx, true)
		if err != nil {
			return err
		}
		defer closeSvc()

		tui.Version = version
		if err := tui.Run(ctx, svc, cfg); err != nil {
			return fmt.Errorf("browser: %w", err)
		}
		return nil
	},
}

var errNotTerminal = errors.New("browse needs an interactive terminal; use stats for scripted output")

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
