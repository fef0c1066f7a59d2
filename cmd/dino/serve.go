package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dino/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dino SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game with its own scheduler and input.
Sound is never played for remote sessions. With --profile-db, every
session records its frame-timing profile under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dino/host_key

Examples:
  dino serve                           # Listen on :23234 with auto-generated key
  dino serve --ssh :2222               # Listen on port 2222
  dino serve --host-key ./my_host_key  # Use specific host key

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

func runServe(cmd *cobra.Command, _ []string) {
	gameCfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	svc, err := startServices(context.Background(), gameCfg, false, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}
	defer svc.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = gameCfg
	cfg.FPS = gameCfg.Loop.FPS
	cfg.Store = svc.store
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		svc.Close()
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}

	fmt.Printf("Starting dino SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		svc.Close()
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		logCloser.Close()
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
