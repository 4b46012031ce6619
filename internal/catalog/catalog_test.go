package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedPack(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	missions := c.Missions()
	if len(missions) != 10 {
		t.Fatalf("Expected 10 missions, got %d", len(missions))
	}

	m, ok := c.Mission(1)
	if !ok {
		t.Fatal("Mission 1 not found")
	}
	if m.Title != "SQL Injection Attack" {
		t.Errorf("Unexpected title for mission 1: %q", m.Title)
	}
	if len(m.Steps) != 2 {
		t.Errorf("Expected 2 steps in mission 1, got %d", len(m.Steps))
	}

	if _, ok := c.Mission(999); ok {
		t.Error("Mission 999 should not exist")
	}
}

func TestStepIDsGloballyUnique(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	seen := make(map[int]bool)
	for _, m := range c.Missions() {
		for _, s := range m.Steps {
			if seen[s.ID] {
				t.Errorf("Step id %d appears more than once", s.ID)
			}
			seen[s.ID] = true

			got, ok := c.Step(s.ID)
			if !ok {
				t.Fatalf("Step(%d) not found", s.ID)
			}
			if got.Title != s.Title {
				t.Errorf("Step(%d) returned wrong step: %q", s.ID, got.Title)
			}
		}
	}
}

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		duration string
		want     int
	}{
		{"45 min", 45},
		{"30 min", 30},
		{"90 min", 90},
		{"2 hours", 2}, // leading integer only, by definition
		{"", 0},
		{"soon", 0},
	}

	for _, tc := range cases {
		m := Mission{Duration: tc.duration}
		if got := m.DurationMinutes(); got != tc.want {
			t.Errorf("DurationMinutes(%q) = %d, want %d", tc.duration, got, tc.want)
		}
	}
}

func TestSlotMappingExhaustiveAndCollisionFree(t *testing.T) {
	used := make(map[Slot]Category)
	for _, cat := range Categories() {
		slot, ok := SlotFor(cat)
		if !ok {
			t.Fatalf("Category %q has no slot", cat)
		}
		if prev, taken := used[slot]; taken {
			t.Errorf("Slot %q shared by categories %q and %q", slot, prev, cat)
		}
		used[slot] = cat
	}

	if _, ok := SlotFor("nonsense"); ok {
		t.Error("Unknown category should have no slot")
	}
}

func TestItemsFilterAndLookup(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	all := c.Items("")
	if len(all) == 0 {
		t.Fatal("Expected store items")
	}

	weapons := c.Items(CategoryWeapon)
	for _, it := range weapons {
		if it.Category != CategoryWeapon {
			t.Errorf("Item %q in weapon filter has category %q", it.ID, it.Category)
		}
	}
	if len(weapons) == 0 || len(weapons) == len(all) {
		t.Errorf("Weapon filter returned %d of %d items", len(weapons), len(all))
	}

	it, ok := c.Item("cyber-sword")
	if !ok {
		t.Fatal("Item cyber-sword not found")
	}
	if it.Price != 75 || it.Rarity != RarityRare {
		t.Errorf("Unexpected cyber-sword data: %+v", it)
	}

	if _, ok := c.Item("no-such-item"); ok {
		t.Error("Unknown item id should not resolve")
	}
}

func TestRarityStars(t *testing.T) {
	if RarityStars(RarityCommon) != 1 || RarityStars(RarityLegendary) != 4 {
		t.Error("Unexpected star counts")
	}
}

func TestLoadExternalPackValidated(t *testing.T) {
	tmpDir := t.TempDir()

	good := filepath.Join(tmpDir, "good.yaml")
	goodYAML := `missions:
  - id: 100
    title: "Custom Mission"
    difficulty: Easy
    duration: "10 min"
    team_type: "Both"
    points: 50
    participants: 0
    category: "Custom"
    steps:
      - id: 1000
        type: terminal
        title: "Run a scan"
        points: 50
        data:
          expected_commands: ["nmap"]
`
	if err := os.WriteFile(good, []byte(goodYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(good)
	if err != nil {
		t.Fatalf("Load(good pack) failed: %v", err)
	}
	if _, ok := c.Mission(100); !ok {
		t.Error("Custom mission not loaded")
	}

	// Schema violation: unknown difficulty.
	bad := filepath.Join(tmpDir, "bad.yaml")
	badYAML := `missions:
  - id: 100
    title: "Broken"
    difficulty: Impossible
    duration: "10 min"
    team_type: "Both"
    points: 50
    steps:
      - id: 1000
        type: terminal
        title: "x"
        points: 50
`
	if err := os.WriteFile(bad, []byte(badYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Expected schema rejection for bad pack")
	}
}

func TestLoadRejectsDuplicateStepIDs(t *testing.T) {
	tmpDir := t.TempDir()
	dup := filepath.Join(tmpDir, "dup.yaml")
	dupYAML := `missions:
  - id: 100
    title: "Dup"
    difficulty: Easy
    duration: "10 min"
    team_type: "Both"
    points: 50
    steps:
      - id: 1000
        type: terminal
        title: "a"
        points: 25
        data:
          expected_commands: ["ls"]
      - id: 1000
        type: terminal
        title: "b"
        points: 25
        data:
          expected_commands: ["ls"]
`
	if err := os.WriteFile(dup, []byte(dupYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dup); err == nil {
		t.Error("Expected duplicate step id rejection")
	}
}
