package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/qlearn"
)

var flagState int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a trained Q-table",
	Long: `Load the table at --table and print its training counters.

With --state, also print the three action values for that state and the
action the autopilot would take.

Examples:
  textdrive inspect
  textdrive inspect --state 0
  textdrive inspect --table ./models/qtable.bin --state 31`,
	Args: cobra.NoArgs,
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&flagState, "state", -1, "State id to print action values for")
}

func runInspect(_ *cobra.Command, _ []string) {
	agent, err := qlearn.LoadAgent(flagTable, core.NewRand(1))
	if err != nil {
		exitErr("loading table", err)
	}

	fmt.Printf("Q-table %s\n", flagTable)
	fmt.Println("========================================")
	fmt.Printf("  Episodes:  %d\n", agent.Episodes())
	fmt.Printf("  Best:      %d\n", agent.BestScore())
	fmt.Printf("  Epsilon:   %.6f\n", agent.Epsilon())
	fmt.Printf("  Visited:   %d / %d states\n", agent.VisitedStates(), qlearn.StateCount)
	fmt.Printf("  Size:      %d bytes\n", qlearn.RecordSize)

	if flagState < 0 {
		return
	}

	s := qlearn.StateID(flagState)
	best, err := agent.BestAction(s)
	if err != nil {
		exitErr("", err)
	}

	fmt.Println()
	fmt.Printf("  State %d\n", s)
	for _, act := range qlearn.Actions() {
		v, _ := agent.Q(s, act)
		marker := " "
		if act == best {
			marker = "*"
		}
		fmt.Printf("  %s %-6s %12.4f\n", marker, act, v)
	}
}
