package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/repository"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Stats reads the catalog file and reports the number of foods, the
count per cuisine, average calories and macros, and how many foods fall
outside the energy-balance tolerance. The most recent generation run is
included when the mirror has one.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

type statsReport struct {
	Path            string         `json:"path"`
	TotalFoods      int            `json:"total_foods"`
	MaxID           int            `json:"max_id"`
	AvgCalories     float64        `json:"avg_calories"`
	AvgProtein      float64        `json:"avg_protein"`
	AvgCarbs        float64        `json:"avg_carbs"`
	AvgFat          float64        `json:"avg_fat"`
	UnbalancedFoods int            `json:"unbalanced_foods"`
	Cuisines        []cuisineCount `json:"cuisines"`
	LastRun         *runReport     `json:"last_run,omitempty"`
}

type cuisineCount struct {
	Cuisine string `json:"cuisine"`
	Count   int    `json:"count"`
}

type runReport struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Generated int       `json:"generated"`
	Adjusted  int       `json:"adjusted"`
	FirstID   string    `json:"first_id,omitempty"`
	LastID    string    `json:"last_id,omitempty"`
	DryRun    bool      `json:"dry_run"`
	StartedAt time.Time `json:"started_at"`
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	svc, closeSvc, err := newService(ctx, true)
	if err != nil {
		slog.Debug("stats without mirror", "error", err)
		svc, closeSvc, _ = newService(ctx, false)
	}
	defer closeSvc()

	stats, err := svc.Stats(ctx)
	if err != nil {
		return err
	}

	report := newStatsReport(svc.Path(), stats)
	if svc.HasMirror() {
		run, err := svc.LatestRun(ctx)
		switch {
		case err == nil:
			report.LastRun = &runReport{
				ID:        run.ID,
				Seed:      run.Seed,
				Generated: run.Generated,
				Adjusted:  run.Adjusted,
				FirstID:   run.FirstID,
				LastID:    run.LastID,
				DryRun:    run.DryRun,
				StartedAt: run.StartedAt,
			}
		case !errors.Is(err, repository.ErrNotFound):
			slog.Warn("reading run history", "error", err)
		}
	}

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printStats(cmd.OutOrStdout(), report)
	return nil
}

func newStatsReport(path string, s *models.CatalogStats) *statsReport {
	r := &statsReport{
		Path:            path,
		TotalFoods:      s.TotalFoods,
		MaxID:           s.MaxID,
		AvgCalories:     s.AvgCalories,
		AvgProtein:      s.AvgProtein,
		AvgCarbs:        s.AvgCarbs,
		AvgFat:          s.AvgFat,
		UnbalancedFoods: s.UnbalancedFoods,
		Cuisines:        make([]cuisineCount, 0, len(s.Cuisines)),
	}
	for _, cc := range s.Cuisines {
		r.Cuisines = append(r.Cuisines, cuisineCount{Cuisine: cc.Cuisine, Count: cc.Count})
	}
	return r
}

func printStats(w io.Writer, r *statsReport) {
	fmt.Fprintf(w, "Catalog:    %s\n", r.Path)
	fmt.Fprintf(w, "Foods:      %d (highest id %d)\n", r.TotalFoods, r.MaxID)
	fmt.Fprintf(w, "Averages:   %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
		r.AvgCalories, r.AvgProtein, r.AvgCarbs, r.AvgFat)
	fmt.Fprintf(w, "Unbalanced: %d\n", r.UnbalancedFoods)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Cuisine", "Foods")
	for _, cc := range r.Cuisines {
		t.Row(cc.Cuisine, strconv.Itoa(cc.Count))
	}
	fmt.Fprintln(w, t.Render())

	if r.LastRun != nil {
		mode := ""
		if r.LastRun.DryRun {
			mode = " (dry run)"
		}
		fmt.Fprintf(w, "Last run:   %s%s, %d foods", r.LastRun.StartedAt.Local().Format(time.DateTime), mode, r.LastRun.Generated)
		if r.LastRun.FirstID != "" {
			fmt.Fprintf(w, " (ids %s-%s)", r.LastRun.FirstID, r.LastRun.LastID)
		}
		fmt.Fprintf(w, ", seed %d\n", r.LastRun.Seed)
	}
}
