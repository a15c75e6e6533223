package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/textdrive/internal/platform/tui"
	"github.com/vovakirdan/textdrive/internal/storage"
)

var (
	flagBrowse bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [manual|ai]",
	Short: "Show high scores",
	Long: `Display the top 10 distances for manual or autopilot driving.

Examples:
  textdrive scores
  textdrive scores ai
  textdrive scores --browse
  textdrive scores manual --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(storage.ModeManual), string(storage.ModeAI)},
	Run:       runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := storage.ModeManual
	if len(args) == 1 {
		m, err := storage.ParseMode(args[0])
		if err != nil {
			exitErr("", err)
		}
		mode = m
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("opening database", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(mode); err != nil {
			exitErr("clearing scores", err)
		}
		fmt.Printf("Cleared %s scores\n", mode)
		return
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, mode, width, height); err != nil {
			exitErr("running scoreboard", err)
		}
		return
	}

	scores, err := store.TopScores(mode, 10)
	if err != nil {
		exitErr("fetching scores", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println("========================================")

	if len(scores) == 0 {
		fmt.Println("  No scores yet. Start driving!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Distance", "Date")
	fmt.Println("  ----  ----------  -------------------")

	for i, s := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, s.Distance, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	highScore, err := store.HighScore(mode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", highScore)
	}
}
