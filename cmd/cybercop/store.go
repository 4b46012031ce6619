package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cybercop-labs/cybercop/internal/platform/tui"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Browse the equipment store",
	Long: `Open the equipment store to buy and equip items with earned shards.

Controls:
  Tab/Arrows  - Switch category
  Up/Down     - Navigate items
  Enter       - Buy item
  E           - Equip item
  U           - Unequip slot
  Esc         - Leave store

Examples:
  cybercop store
  cybercop store --db ./test.db`,
	Run: runStore,
}

func runStore(cmd *cobra.Command, args []string) {
	cat, db, _, err := openAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := tui.RunStore(cat, db, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error running store: %v\n", err)
		os.Exit(1)
	}
}
