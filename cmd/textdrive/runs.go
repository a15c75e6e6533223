package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/textdrive/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show training history",
	Long: `List recorded training runs, newest first.

Examples:
  textdrive runs
  textdrive runs --limit 5
  textdrive runs show <id>`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one training run and its progress reports",
	Args:  cobra.ExactArgs(1),
	Run:   runRunsShow,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to list")
	runsCmd.AddCommand(runsShowCmd)
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening database", err)
	}
	defer store.Close()

	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		exitErr("fetching runs", err)
	}

	fmt.Println("Training Runs")
	fmt.Println("========================================")

	if len(runs) == 0 {
		fmt.Println("  No runs yet. Try 'textdrive train'.")
		return
	}

	fmt.Printf("  %-8s  %-16s  %-10s  %-8s  %-6s  %s\n", "ID", "Started", "Status", "Episodes", "Best", "Avg")
	fmt.Println("  --------  ----------------  ----------  --------  ------  ------")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-16s  %-10s  %-8d  %-6d  %.1f\n",
			shortID(r.ID),
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Status,
			r.CompletedEpisodes,
			r.BestScore,
			r.Average,
		)
	}
}

func runRunsShow(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening database", err)
	}
	defer store.Close()

	run, err := store.Run(args[0])
	if errors.Is(err, storage.ErrRunNotFound) {
		exitErr("", fmt.Errorf("no training run %q", args[0]))
	}
	if err != nil {
		exitErr("fetching run", err)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Println("========================================")
	fmt.Printf("  Table:     %s\n", run.TablePath)
	fmt.Printf("  Status:    %s\n", run.Status)
	fmt.Printf("  Started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if !run.FinishedAt.IsZero() {
		fmt.Printf("  Finished:  %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("  Episodes:  %d of %d (max %d steps)\n", run.CompletedEpisodes, run.Episodes, run.MaxSteps)
	fmt.Printf("  Seed:      %d\n", run.Seed)
	fmt.Printf("  Resumed:   %t\n", run.Resumed)
	fmt.Printf("  Best:      %d\n", run.BestScore)
	fmt.Printf("  Average:   %.2f\n", run.Average)
	fmt.Printf("  Epsilon:   %.4f\n", run.Epsilon)

	progress, err := store.Progress(run.ID)
	if err != nil {
		exitErr("fetching progress", err)
	}
	if len(progress) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-8s  %s\n", "Episode", "Best", "Avg", "Epsilon")
	fmt.Println("  --------  ------  --------  -------")
	for _, p := range progress {
		fmt.Printf("  %-8d  %-6d  %-8.2f  %.4f\n", p.Episode, p.BestScore, p.Average, p.Epsilon)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
