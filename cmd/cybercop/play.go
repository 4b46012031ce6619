package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cybercop-labs/cybercop/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <mission-id>",
	Short: "Play a mission",
	Long: `Start the specified mission directly.

Controls:
  Enter      - Submit answer
  Tab        - Switch field (web login steps)
  Up/Down    - Choose option (multiple choice steps)
  Ctrl+R     - Restart mission from scratch
  Esc        - Leave mission
  Ctrl+C     - Quit

Examples:
  cybercop play 1
  cybercop play 3 --db ./test.db
  cybercop play 1 --missions ./custom-pack.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	missionID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: mission id must be a number, got %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'cybercop list' to see available missions.")
		os.Exit(1)
	}

	cat, db, _, err := openAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, ok := cat.Mission(missionID); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mission %d\n", missionID)
		fmt.Fprintln(os.Stderr, "Run 'cybercop list' to see available missions.")
		os.Exit(1)
	}

	if err := tui.RunMission(cat, db, nil, missionID); err != nil {
		fmt.Fprintf(os.Stderr, "Error running mission: %v\n", err)
		os.Exit(1)
	}
}
