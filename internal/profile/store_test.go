package profile

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.Store) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewStore(db, log.New(io.Discard)), db
}

func TestDefaultsOnFirstRun(t *testing.T) {
	s, _ := newTestStore(t)

	p := s.Profile()
	if p.Username != "Cyber Agent" {
		t.Errorf("Unexpected default username %q", p.Username)
	}
	if p.Shards != 0 || !p.IsNewUser {
		t.Errorf("Unexpected defaults: %+v", p)
	}
	if p.Character.SkinColor != "#FDBCB4" {
		t.Errorf("Unexpected default skin color %q", p.Character.SkinColor)
	}
}

func TestSpendThenAddRestoresBalance(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddShards(100); err != nil {
		t.Fatalf("AddShards() failed: %v", err)
	}
	if err := s.SpendShards(40); err != nil {
		t.Fatalf("SpendShards() failed: %v", err)
	}
	if err := s.AddShards(40); err != nil {
		t.Fatalf("AddShards() failed: %v", err)
	}
	if got := s.Profile().Shards; got != 100 {
		t.Errorf("Balance = %d, want 100", got)
	}
}

func TestSpendRejectsInsufficientFunds(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.AddShards(10); err != nil {
		t.Fatal(err)
	}
	err := s.SpendShards(25)
	if !errors.Is(err, ErrInsufficientShards) {
		t.Fatalf("Expected ErrInsufficientShards, got %v", err)
	}
	// No mutation on rejection
	if got := s.Profile().Shards; got != 10 {
		t.Errorf("Balance mutated on rejected spend: %d", got)
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.UnlockItem("cyber-sword"); err != nil {
		t.Fatal(err)
	}
	if err := s.UnlockItem("cyber-sword"); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Profile().UnlockedItems); got != 1 {
		t.Errorf("Unlocked set has %d entries, want 1", got)
	}
}

func TestEquipEnforcesOwnership(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.EquipItem(catalog.SlotWeapon, "cyber-sword")
	if !errors.Is(err, ErrItemLocked) {
		t.Fatalf("Expected ErrItemLocked, got %v", err)
	}

	if err := s.UnlockItem("cyber-sword"); err != nil {
		t.Fatal(err)
	}
	if err := s.EquipItem(catalog.SlotWeapon, "cyber-sword"); err != nil {
		t.Fatalf("EquipItem() failed after unlock: %v", err)
	}
	if got := s.Profile().Character.Equipped[catalog.SlotWeapon]; got != "cyber-sword" {
		t.Errorf("Equipped weapon = %q, want cyber-sword", got)
	}

	// Clearing is always allowed
	if err := s.EquipItem(catalog.SlotWeapon, ""); err != nil {
		t.Fatalf("Clearing slot failed: %v", err)
	}
	if _, ok := s.Profile().Character.Equipped[catalog.SlotWeapon]; ok {
		t.Error("Slot not cleared")
	}
}

func TestPurchase(t *testing.T) {
	s, _ := newTestStore(t)
	item := catalog.Item{ID: "basic-cap", Price: 25}

	if err := s.Purchase(item); !errors.Is(err, ErrInsufficientShards) {
		t.Fatalf("Expected ErrInsufficientShards, got %v", err)
	}

	if err := s.AddShards(30); err != nil {
		t.Fatal(err)
	}
	if err := s.Purchase(item); err != nil {
		t.Fatalf("Purchase() failed: %v", err)
	}

	p := s.Profile()
	if p.Shards != 5 {
		t.Errorf("Balance after purchase = %d, want 5", p.Shards)
	}
	if !p.HasUnlocked("basic-cap") {
		t.Error("Item not unlocked after purchase")
	}

	if err := s.Purchase(item); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("Expected ErrAlreadyOwned, got %v", err)
	}
}

func TestUpdateCharacterShallowMerge(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.UpdateCharacter(Customization{HairStyle: "mohawk"}); err != nil {
		t.Fatal(err)
	}
	c := s.Profile().Character
	if c.HairStyle != "mohawk" {
		t.Errorf("HairStyle = %q, want mohawk", c.HairStyle)
	}
	// Untouched fields keep their values
	if c.SkinColor != "#FDBCB4" {
		t.Errorf("SkinColor changed unexpectedly: %q", c.SkinColor)
	}
}

func TestUpdateCharacterEnforcesOwnership(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.UpdateCharacter(Customization{
		HairStyle: "mohawk",
		Equipped:  map[catalog.Slot]string{catalog.SlotHead: "elite-crown"},
	})
	if !errors.Is(err, ErrItemLocked) {
		t.Fatalf("Expected ErrItemLocked, got %v", err)
	}

	// No mutation on rejection, including the cosmetic fields
	p := s.Profile()
	if _, ok := p.Character.Equipped[catalog.SlotHead]; ok {
		t.Error("Locked item equipped through character merge")
	}
	if p.Character.HairStyle == "mohawk" {
		t.Error("Cosmetic fields applied despite rejected merge")
	}

	if err := s.UnlockItem("elite-crown"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateCharacter(Customization{
		Equipped: map[catalog.Slot]string{catalog.SlotHead: "elite-crown"},
	}); err != nil {
		t.Fatalf("UpdateCharacter() failed after unlock: %v", err)
	}
	if got := s.Profile().Character.Equipped[catalog.SlotHead]; got != "elite-crown" {
		t.Errorf("Equipped head = %q, want elite-crown", got)
	}
}

func TestCompleteOnboarding(t *testing.T) {
	s, _ := newTestStore(t)

	character := DefaultCustomization()
	character.EyeColor = "#00FF00"
	if err := s.CompleteOnboarding("neo", character); err != nil {
		t.Fatal(err)
	}

	p := s.Profile()
	if p.Username != "neo" || p.IsNewUser {
		t.Errorf("Onboarding not applied: %+v", p)
	}
	if p.Character.EyeColor != "#00FF00" {
		t.Errorf("Character not applied: %+v", p.Character)
	}
}

func TestCompleteMissionIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.CompleteMission(3); err != nil {
		t.Fatal(err)
	}
	if err := s.CompleteMission(3); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Profile().CompletedMissions); got != 1 {
		t.Errorf("Completed list has %d entries, want 1", got)
	}
}

func TestProfileSurvivesReload(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	logger := log.New(io.Discard)
	s := NewStore(db, logger)
	if err := s.AddShards(55); err != nil {
		t.Fatal(err)
	}
	if err := s.UnlockItem("data-gloves"); err != nil {
		t.Fatal(err)
	}
	if err := s.EquipItem(catalog.SlotAccessory, "data-gloves"); err != nil {
		t.Fatal(err)
	}

	reloaded := NewStore(db, logger)
	p := reloaded.Profile()
	if p.Shards != 55 {
		t.Errorf("Shards = %d after reload, want 55", p.Shards)
	}
	if !p.HasUnlocked("data-gloves") {
		t.Error("Unlocked item lost across reload")
	}
	if p.Character.Equipped[catalog.SlotAccessory] != "data-gloves" {
		t.Error("Equipped item lost across reload")
	}
}

func TestMalformedBlobFallsBackToDefaults(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.PutBlob(storage.KeyProfile, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	s := NewStore(db, log.New(io.Discard))
	p := s.Profile()
	if p.Username != "Cyber Agent" || !p.IsNewUser {
		t.Errorf("Expected defaults after malformed blob, got %+v", p)
	}
}
