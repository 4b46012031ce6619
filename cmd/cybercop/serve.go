package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cybercop-labs/cybercop/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the training SSH server",
	Long: `Start an SSH server that lets agents connect and train remotely.

Each SSH connection gets its own session over the shared state database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.cybercop/host_key

Examples:
  cybercop serve                           # Listen on :23235 with auto-generated key
  cybercop serve --ssh :2222               # Listen on port 2222
  cybercop serve --host-key ./my_host_key  # Use specific host key
  cybercop serve --db ./state.db           # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	appCfg, err := effectiveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.DBPath = appCfg.Storage.Path
	cfg.PackPath = appCfg.Catalog.Pack
	if appCfg.SSH.Address != "" {
		cfg.Address = appCfg.SSH.Address
	}
	if appCfg.SSH.HostKeyPath != "" {
		cfg.HostKeyPath = appCfg.SSH.HostKeyPath
	}
	if appCfg.SSH.IdleMinutes > 0 {
		cfg.IdleTimeout = time.Duration(appCfg.SSH.IdleMinutes) * time.Minute
	}

	// Command-line flags win over the config file.
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting cybercop SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23235")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
