package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cybercop-labs/cybercop/internal/platform/tui"
	"github.com/cybercop-labs/cybercop/internal/progress"
)

var (
	flagProgressReset int
	flagProgressBoard bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show mission progress",
	Long: `Display per-mission progress and overall totals.

Examples:
  cybercop progress
  cybercop progress --board      # full-screen board with recent activity
  cybercop progress --reset 1    # wipe progress for mission 1`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().IntVar(&flagProgressReset, "reset", 0, "Reset progress for the given mission id")
	progressCmd.Flags().BoolVar(&flagProgressBoard, "board", false, "Open the full-screen progress board")
}

func runProgress(cmd *cobra.Command, args []string) {
	cat, db, _, err := openAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	prog := progress.NewStore(db, newLogger())

	if flagProgressReset > 0 {
		if err := prog.Reset(flagProgressReset); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Progress for mission %d cleared.\n", flagProgressReset)
		return
	}

	if flagProgressBoard {
		if err := tui.RunBoard(cat, db, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error running board: %v\n", err)
			os.Exit(1)
		}
		return
	}

	records := prog.All()

	fmt.Println("Mission progress:")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("Nothing recorded yet.")
		fmt.Println()
		fmt.Println("Run 'cybercop play <id>' to start your first mission!")
		return
	}

	// Print header
	fmt.Printf("  %-30s  %-8s  %-8s  %s\n", "Mission", "Steps", "Score", "Completed")
	fmt.Printf("  %-30s  %-8s  %-8s  %s\n", "-------", "-----", "-----", "---------")

	for _, rec := range records {
		title := fmt.Sprintf("#%d", rec.MissionID)
		total := 0
		if m, ok := cat.Mission(rec.MissionID); ok {
			title = m.Title
			total = len(m.Steps)
		}

		completed := "-"
		if rec.CompletedAt != nil {
			completed = rec.CompletedAt.Format("2006-01-02 15:04")
		}

		fmt.Printf("  %-30s  %d/%-6d  %-8d  %s\n",
			title, len(rec.CompletedChallenges), total, rec.TotalScore, completed)
	}

	fmt.Println()
	fmt.Printf("Total score: %d\n", prog.TotalScore())

	if totals, err := db.GetTotals(); err == nil && totals.Completions > 0 {
		fmt.Printf("Steps completed: %d | Shards earned: %d\n", totals.Completions, totals.TotalShards)
	}
}
