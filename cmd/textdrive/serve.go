package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/textdrive/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TextDrive SSH server",
	Long: `Start an SSH server that allows users to connect and drive.

Each SSH connection gets its own course. All sessions share one read-only
autopilot loaded from --table, and scores go to one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.textdrive/host_key

Examples:
  textdrive serve                           # Listen on :23234 with auto-generated key
  textdrive serve --ssh :2222               # Listen on port 2222
  textdrive serve --host-key ./my_host_key  # Use specific host key
  textdrive serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		TablePath:   flagTable,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Play:        appConfig.Play,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		exitErr("creating server", err)
	}

	fmt.Printf("Starting TextDrive SSH server on %s\n", cfg.Address)
	if !server.HasPilot() {
		fmt.Println("Autopilot disabled: train a table first with 'textdrive train'")
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(context.Background()); err != nil {
		exitErr("serving", err)
	}
}
