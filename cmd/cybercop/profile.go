package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/profile"
)

var flagProfileReset bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the agent profile",
	Long: `Display the agent profile: username, level, shards, equipment,
and completed missions.

Examples:
  cybercop profile
  cybercop profile --reset`,
	Run: runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&flagProfileReset, "reset", false, "Reset the profile to defaults")
}

func runProfile(cmd *cobra.Command, args []string) {
	cat, db, _, err := openAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	profiles := profile.NewStore(db, newLogger())

	if flagProfileReset {
		if err := profiles.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting profile: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Profile reset to defaults.")
		return
	}

	p := profiles.Profile()

	fmt.Printf("Agent:    %s\n", p.Username)
	fmt.Printf("Level:    %d\n", p.Level())
	fmt.Printf("Shards:   %d\n", p.Shards)
	fmt.Printf("Items:    %d owned\n", len(p.UnlockedItems))
	fmt.Printf("Missions: %d completed\n", len(p.CompletedMissions))
	fmt.Println()

	fmt.Println("Equipment:")
	for _, slot := range catalog.Slots() {
		itemID := p.Character.Equipped[slot]
		if itemID == "" {
			fmt.Printf("  %-10s -\n", slot)
			continue
		}
		name := itemID
		if item, ok := cat.Item(itemID); ok {
			name = fmt.Sprintf("%s %s", item.Emoji, item.Name)
		}
		fmt.Printf("  %-10s %s\n", slot, name)
	}

	if len(p.CompletedMissions) > 0 {
		fmt.Println()
		fmt.Println("Completed missions:")
		for _, id := range p.CompletedMissions {
			title := fmt.Sprintf("#%d", id)
			if m, ok := cat.Mission(id); ok {
				title = m.Title
			}
			fmt.Printf("  %s\n", title)
		}
	}
}
