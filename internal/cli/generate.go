package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/breadcrumb/foodseed/internal/services/foods"
)

var generateFlags struct {
	count    int
	seed     int64
	dryRun   bool
	noBackup bool
	sync     bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Append synthetic foods to the catalog",
	Long: `Generate appends new foods to the catalog file.

Ids continue from the highest id already present. Each food is assigned a
cuisine from the catalog's cuisine list, so every cuisine needs an entry in
the built-in vocabulary. The catalog is only rewritten once every food has
been generated; a .bak copy of the previous file is kept unless --no-backup
is given.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVarP(&generateFlags.count, "count", "n", 0, "Number of foods to add (default from [generator] count)")
	f.Int64Var(&generateFlags.seed, "seed", 0, "Random seed (default from [generator] seed; 0 seeds from the clock)")
	f.BoolVar(&generateFlags.dryRun, "dry-run", false, "Generate and report without writing the catalog")
	f.BoolVar(&generateFlags.noBackup, "no-backup", false, "Do not keep a .bak copy of the previous catalog")
	f.BoolVar(&generateFlags.sync, "sync", false, "Rebuild the SQLite mirror after writing")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	count := cfg.Generator.Count
	if cmd.Flags().Changed("count") {
		count = generateFlags.count
	}

	// The run history lives in the mirror. Without --sync a mirror that
	// cannot be opened only costs the history entry.
	svc, closeSvc, err := newService(ctx, true)
	if err != nil {
		if generateFlags.sync {
			return err
		}
		slog.Warn("continuing without mirror", "error", err)
		svc, closeSvc, _ = newService(ctx, false)
	}
	defer closeSvc()

	result, err := svc.Generate(ctx, foods.GenerateInput{
		Count:  count,
		Seed:   generateFlags.seed,
		DryRun: generateFlags.dryRun,
		Backup: cfg.Catalog.Backup && !generateFlags.noBackup,
		Sync:   generateFlags.sync,
	})
	if result == nil {
		return err
	}
	if err != nil {
		// The catalog was written; only the mirror update failed.
		slog.Warn("mirror not updated", "error", err)
	}

	printGenerateResult(cmd.OutOrStdout(), result)
	return nil
}

func printGenerateResult(w io.Writer, r *foods.GenerateResult) {
	if r.DryRun {
		fmt.Fprintf(w, "Would add %d new foods to %s (dry run)\n", r.Added, r.Path)
	} else {
		fmt.Fprintf(w, "Added %d new foods to %s\n", r.Added, r.Path)
	}

	if r.Added > 0 {
		fmt.Fprintln(w, "Foods per cuisine:")
		for _, cc := range r.Distribution {
			fmt.Fprintf(w, "%s: %d\n", cc.Cuisine, cc.Count)
		}
	}

	fmt.Fprintf(w, "Seed: %d\n", r.Seed)
	if r.BackupPath != "" {
		fmt.Fprintf(w, "Backup: %s\n", r.BackupPath)
	}
	if r.Synced {
		fmt.Fprintln(w, "Mirror synced")
	}
}
