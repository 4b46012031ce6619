// cybercop is a TUI cybersecurity training platform played in the terminal.
//
// Usage:
//
//	cybercop list              - List available missions
//	cybercop play <mission>    - Play a mission directly
//	cybercop menu              - Start the interactive session
//	cybercop store             - Browse the equipment store
//	cybercop profile           - Show the agent profile
//	cybercop progress          - Show mission progress
//	cybercop serve             - Start SSH server for remote play
//
// Global flags:
//
//	--db <path>        - Set database path (default: ~/.cybercop/cybercop.db)
//	--missions <path>  - Load an external mission pack YAML
//	--config <path>    - Load a custom config file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/config"
	"github.com/cybercop-labs/cybercop/internal/storage"
)

var (
	// Global flags
	flagDBPath     string
	flagPack       string
	flagConfigPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cybercop",
	Short: "CyberCop - Cybersecurity training missions in your terminal",
	Long: `CyberCop is a terminal-based training platform with hands-on
cybersecurity missions, an equipment store, and persistent progression.

Available commands:
  list     - Show all available missions
  play     - Play a specific mission directly
  menu     - Interactive session (missions, store, progress)
  store    - Browse the equipment store
  profile  - Show the agent profile
  progress - View mission progress and recent activity
  serve    - Start SSH server for remote play

Examples:
  cybercop list
  cybercop play 1
  cybercop menu
  cybercop serve --ssh :2222
  cybercop progress`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to state database (default: ~/.cybercop/cybercop.db)")
	rootCmd.PersistentFlags().StringVar(&flagPack, "missions", "", "Path to an external mission pack YAML")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to a custom config YAML")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// effectiveConfig merges the config file with command-line overrides.
func effectiveConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagPack != "" {
		cfg.Catalog.Pack = flagPack
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = config.Default().Storage.Path
	}
	return cfg, nil
}

// openAll loads the catalog and opens the database per the effective config.
func openAll() (*catalog.Catalog, *storage.Store, config.Config, error) {
	cfg, err := effectiveConfig()
	if err != nil {
		return nil, nil, cfg, err
	}

	cat, err := catalog.Load(cfg.Catalog.Pack)
	if err != nil {
		return nil, nil, cfg, err
	}

	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, cfg, err
	}

	return cat, db, cfg, nil
}

// newLogger returns the CLI logger.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "cybercop",
	})
}
