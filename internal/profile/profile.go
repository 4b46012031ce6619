// Package profile owns the durable user state: identity, shard balance,
// unlocked items, equipped items, and character customization. It is one of
// the two persistence repositories; mission completion state lives in the
// progress package.
package profile

import "github.com/cybercop-labs/cybercop/internal/catalog"

// Customization holds the character's appearance and equipment.
type Customization struct {
	SkinColor string                  `json:"skinColor"`
	HairStyle string                  `json:"hairStyle"`
	HairColor string                  `json:"hairColor"`
	EyeColor  string                  `json:"eyeColor"`
	Equipped  map[catalog.Slot]string `json:"equippedItems"`
}

// Profile is the persisted user state.
type Profile struct {
	Username          string        `json:"username"`
	Shards            int           `json:"shards"`
	Character         Customization `json:"character"`
	UnlockedItems     []string      `json:"unlockedItems"`
	CompletedMissions []int         `json:"completedMissions"`
	IsNewUser         bool          `json:"isNewUser"`
}

// DefaultCustomization returns the appearance new agents start with.
func DefaultCustomization() Customization {
	return Customization{
		SkinColor: "#FDBCB4",
		HairStyle: "short",
		HairColor: "#8B4513",
		EyeColor:  "#8B4513",
		Equipped:  map[catalog.Slot]string{},
	}
}

// DefaultProfile returns the first-run profile.
func DefaultProfile() Profile {
	return Profile{
		Username:          "Cyber Agent",
		Shards:            0,
		Character:         DefaultCustomization(),
		UnlockedItems:     []string{},
		CompletedMissions: []int{},
		IsNewUser:         true,
	}
}

// HasUnlocked reports whether the item id is in the unlocked set.
func (p Profile) HasUnlocked(itemID string) bool {
	for _, id := range p.UnlockedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// HasCompletedMission reports whether the mission id is recorded as complete.
func (p Profile) HasCompletedMission(missionID int) bool {
	for _, id := range p.CompletedMissions {
		if id == missionID {
			return true
		}
	}
	return false
}

// Level derives the cosmetic agent level from lifetime shard balance.
func (p Profile) Level() int {
	return p.Shards/100 + 1
}
