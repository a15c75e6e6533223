package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/textdrive/internal/autopilot"
	"github.com/vovakirdan/textdrive/internal/config"
	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/drive"
	"github.com/vovakirdan/textdrive/internal/platform/tui"
	"github.com/vovakirdan/textdrive/internal/storage"
)

var (
	flagAI         bool
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play TextDrive",
	Long: `Drive the course in your terminal.

Controls:
  A/Left     - Steer left
  D/Right    - Steer right
  M          - Toggle autopilot
  P/Esc      - Pause
  R          - Restart
  Q/Ctrl+C   - Quit

The autopilot reads the table at --table. If the table is missing, manual
play still works and the notice line explains why AI mode is unavailable.

Difficulty options:
  easy   - Start slow, speed up with distance
  normal - Start at 30% difficulty, speed up with distance
  hard   - Start at 70% difficulty, speed up with distance
  fixed  - No progression, stays at config's initial level

Examples:
  textdrive play
  textdrive play --ai
  textdrive play --difficulty hard
  textdrive play --table ./models/qtable.bin`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAI, "ai", false, "Start with the autopilot driving")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	playCfg := appConfig
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			exitErr("parsing difficulty", err)
		}
		config.ApplyPreset(&playCfg, preset)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	tablePath := flagTable
	opts := drive.Options{
		Play: playCfg.Play,
		LoadPilot: func() (*autopilot.Pilot, error) {
			return autopilot.Load(tablePath)
		},
	}
	if flagAI {
		pilot, err := autopilot.Load(tablePath)
		if err != nil {
			logger.Warn("autopilot unavailable, starting in manual mode", "table", tablePath, "error", err)
		} else {
			opts.Pilot = pilot
			opts.AIMode = true
		}
	}
	game := drive.New(opts)

	// Open storage (optional)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, cfg); err != nil {
		exitErr("running game", err)
	}
}
