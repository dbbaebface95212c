package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past analysis runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		repo, _ := cmd.Flags().GetString("repo")

		var runs []history.Run
		if repo != "" {
			runs, err = db.ListByRepository(repo)
		} else {
			runs, err = db.List(limit)
		}
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No analysis runs recorded.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-20s %-35s %-12s %-11s %s\n", "WHEN", "REPOSITORY", "LANGUAGE", "CONFIDENCE", "DURATION")
		fmt.Fprintf(w, "%-20s %-35s %-12s %-11s %s\n",
			strings.Repeat("-", 20),
			strings.Repeat("-", 35),
			strings.Repeat("-", 12),
			strings.Repeat("-", 11),
			strings.Repeat("-", 8))
		for _, r := range runs {
			fmt.Fprintf(w, "%-20s %-35s %-12s %-11s %s\n",
				r.CreatedAt, r.Repository, r.Language,
				fmt.Sprintf("%.0f%%", r.Confidence*100),
				r.Duration.Round(time.Millisecond))
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate statistics over all runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistory()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats()
		if err != nil {
			return fmt.Errorf("compute stats: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Total runs:          %d\n", stats.TotalRuns)
		fmt.Fprintf(w, "Unique repositories: %d\n", stats.UniqueRepos)
		fmt.Fprintf(w, "Average confidence:  %.0f%%\n", stats.AvgConfidence*100)
		fmt.Fprintf(w, "Average duration:    %s\n", stats.AvgDuration.Round(time.Millisecond))
		if len(stats.Languages) > 0 {
			fmt.Fprintln(w, "Languages:")
			for _, lc := range stats.Languages {
				fmt.Fprintf(w, "  %-14s %d\n", lc.Language, lc.Count)
			}
		}
		return nil
	},
}

func openHistory() (*history.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.HistoryDB
	if path == "" {
		path, err = history.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	db, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyListCmd.Flags().String("repo", "", "only show runs for this repository (owner/name)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
