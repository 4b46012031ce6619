package profile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cybercop-labs/cybercop/internal/catalog"
	"github.com/cybercop-labs/cybercop/internal/storage"
)

// Domain errors returned by store mutations. Callers match with errors.Is.
var (
	// ErrInsufficientShards rejects a spend larger than the balance before
	// any mutation happens.
	ErrInsufficientShards = errors.New("profile: insufficient shards")

	// ErrItemLocked rejects equipping an item that is not unlocked.
	ErrItemLocked = errors.New("profile: item not unlocked")

	// ErrAlreadyOwned rejects purchasing an item twice.
	ErrAlreadyOwned = errors.New("profile: item already owned")
)

// BlobStore is the persistence surface the profile store needs.
type BlobStore interface {
	GetBlob(key string) ([]byte, error)
	PutBlob(key string, value []byte) error
}

// Store is the profile repository. It holds the single authoritative copy of
// the profile in memory and persists after every mutation. There is exactly
// one logical writer, so no locking is needed.
type Store struct {
	blobs   BlobStore
	logger  *log.Logger
	profile Profile
}

// NewStore loads the profile from the blob store. An absent or malformed
// blob is not fatal: the store logs a warning and starts from defaults.
func NewStore(blobs BlobStore, logger *log.Logger) *Store {
	s := &Store{
		blobs:   blobs,
		logger:  logger,
		profile: DefaultProfile(),
	}

	data, err := blobs.GetBlob(storage.KeyProfile)
	if err != nil {
		s.logger.Warn("could not load profile, starting fresh", "error", err)
		return s
	}
	if data == nil {
		return s
	}

	// Decode over defaults so missing fields keep their default values.
	loaded := DefaultProfile()
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("profile blob is malformed, starting fresh", "error", err)
		return s
	}
	if loaded.Character.Equipped == nil {
		loaded.Character.Equipped = map[catalog.Slot]string{}
	}
	if loaded.Shards < 0 {
		s.logger.Warn("profile blob has negative shards, clamping", "shards", loaded.Shards)
		loaded.Shards = 0
	}
	s.profile = loaded
	return s
}

// Profile returns a copy of the current profile. The equipped map is cloned
// so readers cannot mutate store state.
func (s *Store) Profile() Profile {
	p := s.profile
	p.Character.Equipped = make(map[catalog.Slot]string, len(s.profile.Character.Equipped))
	for slot, id := range s.profile.Character.Equipped {
		p.Character.Equipped[slot] = id
	}
	p.UnlockedItems = append([]string(nil), s.profile.UnlockedItems...)
	p.CompletedMissions = append([]int(nil), s.profile.CompletedMissions...)
	return p
}

// AddShards credits the balance.
func (s *Store) AddShards(amount int) error {
	if amount <= 0 {
		return nil
	}
	s.profile.Shards += amount
	return s.persist()
}

// SpendShards debits the balance. The spend is rejected before any mutation
// when the balance is too low.
func (s *Store) SpendShards(amount int) error {
	if amount <= 0 {
		return nil
	}
	if s.profile.Shards < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientShards, s.profile.Shards, amount)
	}
	s.profile.Shards -= amount
	return s.persist()
}

// UnlockItem adds an item to the unlocked set. Idempotent.
func (s *Store) UnlockItem(itemID string) error {
	if s.profile.HasUnlocked(itemID) {
		return nil
	}
	s.profile.UnlockedItems = append(s.profile.UnlockedItems, itemID)
	return s.persist()
}

// Purchase spends the item's price and unlocks it in one mutation.
func (s *Store) Purchase(item catalog.Item) error {
	if s.profile.HasUnlocked(item.ID) {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, item.ID)
	}
	if s.profile.Shards < item.Price {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientShards, s.profile.Shards, item.Price)
	}
	s.profile.Shards -= item.Price
	s.profile.UnlockedItems = append(s.profile.UnlockedItems, item.ID)
	return s.persist()
}

// EquipItem sets the item occupying a slot. An empty itemID clears the slot.
// Equipping an item that is not unlocked is rejected: ownership is enforced
// here, not left to callers.
func (s *Store) EquipItem(slot catalog.Slot, itemID string) error {
	if itemID == "" {
		delete(s.profile.Character.Equipped, slot)
		return s.persist()
	}
	if !s.profile.HasUnlocked(itemID) {
		return fmt.Errorf("%w: %s", ErrItemLocked, itemID)
	}
	s.profile.Character.Equipped[slot] = itemID
	return s.persist()
}

// UpdateCharacter shallow-merges the non-zero fields of the partial
// customization into the character. The equipped map is merged per slot;
// ids that are not unlocked are rejected with ErrItemLocked before any
// field changes, same as EquipItem.
func (s *Store) UpdateCharacter(partial Customization) error {
	for _, id := range partial.Equipped {
		if id != "" && !s.profile.HasUnlocked(id) {
			return fmt.Errorf("%w: %s", ErrItemLocked, id)
		}
	}

	c := &s.profile.Character
	if partial.SkinColor != "" {
		c.SkinColor = partial.SkinColor
	}
	if partial.HairStyle != "" {
		c.HairStyle = partial.HairStyle
	}
	if partial.HairColor != "" {
		c.HairColor = partial.HairColor
	}
	if partial.EyeColor != "" {
		c.EyeColor = partial.EyeColor
	}
	for slot, id := range partial.Equipped {
		if id == "" {
			delete(c.Equipped, slot)
		} else {
			c.Equipped[slot] = id
		}
	}
	return s.persist()
}

// CompleteOnboarding sets the identity chosen during character creation and
// clears the new-user flag.
func (s *Store) CompleteOnboarding(username string, character Customization) error {
	for _, id := range character.Equipped {
		if id != "" && !s.profile.HasUnlocked(id) {
			return fmt.Errorf("%w: %s", ErrItemLocked, id)
		}
	}
	s.profile.Username = username
	if character.Equipped == nil {
		character.Equipped = map[catalog.Slot]string{}
	}
	s.profile.Character = character
	s.profile.IsNewUser = false
	return s.persist()
}

// CompleteMission records a mission id in the completed list. Idempotent.
func (s *Store) CompleteMission(missionID int) error {
	if s.profile.HasCompletedMission(missionID) {
		return nil
	}
	s.profile.CompletedMissions = append(s.profile.CompletedMissions, missionID)
	return s.persist()
}

// Reset discards the profile and returns to first-run defaults.
func (s *Store) Reset() error {
	s.profile = DefaultProfile()
	return s.persist()
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.profile)
	if err != nil {
		return fmt.Errorf("profile: cannot encode profile: %w", err)
	}
	if err := s.blobs.PutBlob(storage.KeyProfile, data); err != nil {
		return fmt.Errorf("profile: cannot persist profile: %w", err)
	}
	return nil
}
