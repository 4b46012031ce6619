package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cybercop-labs/cybercop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive session",
	Long: `Start the full interactive session: mission picker, equipment store,
and progress board. First-time agents go through character creation.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select mission
  E            - Equipment store
  Tab          - Progress board
  Q            - Quit

Examples:
  cybercop menu
  cybercop menu --db ./test.db
  cybercop menu --missions ./custom-pack.yaml`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	cat, db, _, err := openAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunSession(cat, db, nil, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", err)
		os.Exit(1)
	}
}
