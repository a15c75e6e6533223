// textdrive is a terminal driving game with a tabular Q-learning autopilot.
//
// Usage:
//
//	textdrive train              - Train the Q-table offline
//	textdrive play               - Drive manually; press M for the autopilot
//	textdrive scores [mode]      - Show high scores (manual or ai)
//	textdrive runs               - Show training history
//	textdrive inspect            - Summarize a trained Q-table
//	textdrive serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: from config, 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--db <path>      - Set database path (default: ~/.textdrive/textdrive.db)
//	--table <path>   - Set Q-table path (default: qtable.bin)
//	--config <path>  - Use a specific config file
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/textdrive/internal/config"
)

const defaultDBPath = "~/.textdrive/textdrive.db"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagTable   string
	flagConfig  string
	flagVerbose bool

	// Resolved before any subcommand runs
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	config.LoadEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "textdrive",
	Short: "TextDrive - dodge walls in your terminal, or let Q-learning drive",
	Long: `TextDrive is a terminal driving game. The course scrolls toward your car
and you steer left or right to stay in the corridor. A tabular Q-learning
agent can be trained offline and then take the wheel during play.

Available commands:
  train    - Train the Q-table
  play     - Play (manual or autopilot)
  scores   - View high scores
  runs     - View training history
  inspect  - Summarize a trained table
  serve    - Start SSH server for remote play

Environment:
  TEXTDRIVE_TABLE and TEXTDRIVE_DB override the default --table and --db.
  A .env file in the working directory is loaded first.

Examples:
  textdrive train --episodes 50000
  textdrive play --ai
  textdrive scores ai
  textdrive serve --ssh :2222`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default "+defaultDBPath+")")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", "", "Path to Q-table (default qtable.bin)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration and resolves flag defaults from it and the environment.
func setup(cmd *cobra.Command, _ []string) error {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "textdrive",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg

	if flagTable == "" {
		flagTable = config.EnvOr(config.EnvTable, cfg.Training.TablePath)
	}
	if flagDBPath == "" {
		flagDBPath = config.EnvOr(config.EnvDB, defaultDBPath)
	}
	if flagFPS <= 0 {
		flagFPS = cfg.Play.TickRate
	}
	if !cmd.Flags().Changed("seed") {
		flagSeed = cfg.Training.Seed
	}

	logger.Debug("configuration", "table", flagTable, "db", flagDBPath, "fps", flagFPS, "seed", flagSeed)
	return nil
}

// exitErr prints an error in the CLI's format and exits.
func exitErr(context string, err error) {
	if context == "" {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	}
	os.Exit(1)
}
