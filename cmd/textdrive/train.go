package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/textdrive/internal/core"
	"github.com/vovakirdan/textdrive/internal/qlearn"
	"github.com/vovakirdan/textdrive/internal/storage"
	"github.com/vovakirdan/textdrive/internal/training"
)

var (
	flagEpisodes    int
	flagMaxSteps    int
	flagReportEvery int
	flagResume      bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the Q-learning agent",
	Long: `Train the autopilot by playing the course repeatedly.

Each episode starts a fresh course and ends on a crash or at the step cap.
Exploration starts at 1.0 and decays after every episode. Progress is logged
every --report-every episodes and recorded in the database; the table is saved
to --table when training finishes or is interrupted.

Examples:
  textdrive train
  textdrive train --episodes 5000 --seed 42
  textdrive train --resume --episodes 10000`,
	Args: cobra.NoArgs,
	Run:  runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagEpisodes, "episodes", 0, "Episodes to train (default from config, 50000)")
	trainCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step cap per episode (default from config, 10000)")
	trainCmd.Flags().IntVar(&flagReportEvery, "report-every", 0, "Episodes between progress reports (default from config, 500)")
	trainCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue from the existing table")
}

func runTrain(_ *cobra.Command, _ []string) {
	tc := appConfig.Training
	cfg := training.Config{
		Episodes:    tc.Episodes,
		MaxSteps:    tc.MaxSteps,
		ReportEvery: tc.ReportEvery,
		WindowSize:  tc.WindowSize,
		TablePath:   flagTable,
	}
	if flagEpisodes > 0 {
		cfg.Episodes = flagEpisodes
	}
	if flagMaxSteps > 0 {
		cfg.MaxSteps = flagMaxSteps
	}
	if flagReportEvery > 0 {
		cfg.ReportEvery = flagReportEvery
	}

	rng := core.NewRand(flagSeed)
	agent := qlearn.NewAgent(rng)
	if flagResume {
		if err := agent.Load(flagTable); err != nil {
			logger.Warn("cannot resume, starting fresh", "table", flagTable, "error", err)
		} else {
			logger.Info("resuming", "table", flagTable, "episodes", agent.Episodes(), "epsilon", agent.Epsilon())
		}
	}

	reporters := []training.Reporter{training.NewLogReporter(logger, cfg.Episodes)}

	// Training history is optional
	var runID string
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("training history disabled", "error", err)
		store = nil
	} else {
		runID, err = store.StartRun(storage.RunParams{
			TablePath: flagTable,
			Episodes:  cfg.Episodes,
			MaxSteps:  cfg.MaxSteps,
			Seed:      flagSeed,
			Resumed:   flagResume,
		})
		if err != nil {
			logger.Warn("cannot record run", "error", err)
		} else {
			reporters = append(reporters, storage.NewRunRecorder(store, runID))
			logger.Debug("recording run", "id", runID)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("training", "episodes", cfg.Episodes, "max_steps", cfg.MaxSteps, "table", flagTable)
	trainer := training.New(cfg, agent, rng, reporters...)
	summary, runErr := trainer.Run(ctx)

	status := storage.StatusCompleted
	switch {
	case errors.Is(runErr, context.Canceled):
		status = storage.StatusCancelled
	case runErr != nil:
		status = storage.StatusFailed
	}

	if store != nil {
		if runID != "" {
			err := store.FinishRun(runID, storage.RunResult{
				Episodes:  summary.Episodes,
				BestScore: summary.BestScore,
				Average:   summary.Average,
				Epsilon:   summary.Epsilon,
				Status:    status,
			})
			if err != nil {
				logger.Warn("cannot finish run record", "error", err)
			}
		}
		store.Close()
	}

	if status == storage.StatusFailed {
		exitErr("training", runErr)
	}

	logger.Info("training "+status,
		"episodes", summary.Episodes,
		"best", summary.BestScore,
		"avg", summary.Average,
		"epsilon", summary.Epsilon,
		"duration", summary.Duration.Round(time.Millisecond),
		"table", flagTable,
	)
}
