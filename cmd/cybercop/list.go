package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available missions",
	Long:  `Shows every mission in the catalog with its difficulty and reward.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	cat, db, _, err := openAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	missions := cat.Missions()
	if len(missions) == 0 {
		fmt.Println("No missions available.")
		return
	}

	fmt.Println("Available missions:")
	fmt.Println()

	// Calculate column widths
	maxTitleLen := 5 // "Title" header
	for _, m := range missions {
		if len(m.Title) > maxTitleLen {
			maxTitleLen = len(m.Title)
		}
	}

	// Print header
	fmt.Printf("  %-3s  %-*s  %-8s  %-9s  %-7s  %s\n", "ID", maxTitleLen, "Title", "Diff", "Team", "Points", "Duration")
	fmt.Printf("  %-3s  %-*s  %-8s  %-9s  %-7s  %s\n", "--", maxTitleLen, "-----", "----", "----", "------", "--------")

	// Print missions
	for _, m := range missions {
		fmt.Printf("  %-3d  %-*s  %-8s  %-9s  %-7d  %s\n",
			m.ID, maxTitleLen, m.Title, m.Difficulty, m.TeamType, m.Points, m.Duration)
	}

	fmt.Println()
	fmt.Println("Run 'cybercop play <id>' to start a mission.")
}
