package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/bondwatch/internal/evallog"
	"github.com/ppiankov/bondwatch/internal/history"
)

var (
	historyDB     string
	historyLimit  int
	historyStats  bool
	historyFormat string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyDB, "db", "", "Path to history database (default: ~/.bondwatch/history.db)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of recent evaluations to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show aggregate statistics instead of recent rows")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "Output format (text|json)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Query the evaluation history database",
	Long: "Lists recent evaluation outcomes from the history database, or with --stats\n" +
		"prints aggregate risk counts, average category scores, and top firing rules.",
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := historyDB
	if path == "" {
		path = history.DefaultPath()
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	if historyStats {
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		if historyFormat == "json" {
			out, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		printStats(stats)
		return nil
	}

	records, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if historyFormat == "json" {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	printRecords(records)
	return nil
}

func printStats(stats *history.Stats) {
	fmt.Printf("Evaluations: %d\n", stats.Total)
	for _, level := range []string{"HIGH", "MEDIUM", "LOW"} {
		fmt.Printf("  %-7s %d\n", level+":", stats.ByRisk[level])
	}
	fmt.Println()
	fmt.Println("Average scores:")
	fmt.Printf("  %-13s %.3f\n", "intimacy:", stats.AvgIntimacy)
	fmt.Printf("  %-13s %.3f\n", "boundary:", stats.AvgBoundary)
	fmt.Printf("  %-13s %.3f\n", "manipulation:", stats.AvgManipulation)
	if len(stats.TopRules) > 0 {
		fmt.Println()
		fmt.Println("Top rules:")
		for _, r := range stats.TopRules {
			fmt.Printf("  %-40s %d\n", r.Category+"/"+r.Rule, r.Count)
		}
	}
}

func printRecords(records []history.Record) {
	if len(records) == 0 {
		fmt.Println("No evaluations recorded.")
		return
	}
	for _, rec := range records {
		fmt.Printf("%-20s %-7s %-13s %-11s [%s]\n",
			recordTime(rec.CreatedAt), rec.OverallRisk, rec.PrimaryConcern,
			matchLabel(rec.MatchCount), rec.Source)
	}
}

func recordTime(ts string) string {
	t, err := time.Parse(evallog.TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

func matchLabel(n int) string {
	switch n {
	case 0:
		return "clean"
	case 1:
		return "1 match"
	default:
		return fmt.Sprintf("%d matches", n)
	}
}
