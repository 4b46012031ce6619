package catalog

// Category groups store items and decides which character slot they occupy.
type Category string

const (
	CategoryHeadgear  Category = "headgear"
	CategoryWeapon    Category = "weapon"
	CategoryShield    Category = "shield"
	CategoryAccessory Category = "accessory"
	CategoryOutfit    Category = "outfit"
	CategoryCompanion Category = "companion"
)

// Categories lists every item category in display order.
func Categories() []Category {
	return []Category{
		CategoryHeadgear,
		CategoryWeapon,
		CategoryShield,
		CategoryAccessory,
		CategoryOutfit,
		CategoryCompanion,
	}
}

// Rarity grades an item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// RarityStars returns the star count shown next to an item.
func RarityStars(r Rarity) int {
	switch r {
	case RarityRare:
		return 2
	case RarityEpic:
		return 3
	case RarityLegendary:
		return 4
	default:
		return 1
	}
}

// Slot is a named attachment point on a character, holding at most one item.
type Slot string

const (
	SlotHead      Slot = "head"
	SlotWeapon    Slot = "weapon"
	SlotShield    Slot = "shield"
	SlotAccessory Slot = "accessory"
	SlotOutfit    Slot = "outfit"
	SlotCompanion Slot = "companion"
)

// Slots lists every equipment slot.
func Slots() []Slot {
	return []Slot{SlotHead, SlotWeapon, SlotShield, SlotAccessory, SlotOutfit, SlotCompanion}
}

// slotByCategory maps each item category to its dedicated slot. Every
// category has exactly one slot and no two categories share one.
var slotByCategory = map[Category]Slot{
	CategoryHeadgear:  SlotHead,
	CategoryWeapon:    SlotWeapon,
	CategoryShield:    SlotShield,
	CategoryAccessory: SlotAccessory,
	CategoryOutfit:    SlotOutfit,
	CategoryCompanion: SlotCompanion,
}

// SlotFor returns the equipment slot an item category occupies.
func SlotFor(category Category) (Slot, bool) {
	s, ok := slotByCategory[category]
	return s, ok
}

// Item is a purchasable piece of equipment.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Category    Category `yaml:"category" json:"category"`
	Subtype     string   `yaml:"subtype,omitempty" json:"subtype,omitempty"`
	Price       int      `yaml:"price" json:"price"`
	Rarity      Rarity   `yaml:"rarity" json:"rarity"`
	Emoji       string   `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// storeItems is the built-in equipment inventory.
var storeItems = []Item{
	{ID: "basic-cap", Name: "Agent Cap", Category: CategoryHeadgear, Subtype: "hat", Price: 25, Rarity: RarityCommon, Emoji: "🧢", Description: "Standard issue cyber agent cap"},
	{ID: "tactical-helmet", Name: "Tactical Helmet", Category: CategoryHeadgear, Subtype: "helmet", Price: 50, Rarity: RarityRare, Emoji: "⛑️", Description: "Military-grade protection helmet"},
	{ID: "cyber-visor", Name: "Cyber Visor", Category: CategoryHeadgear, Subtype: "helmet", Price: 75, Rarity: RarityRare, Emoji: "🥽", Description: "High-tech heads-up display"},
	{ID: "stealth-mask", Name: "Stealth Mask", Category: CategoryHeadgear, Subtype: "mask", Price: 60, Rarity: RarityRare, Emoji: "🎭", Description: "Infiltration specialist mask"},
	{ID: "elite-crown", Name: "Elite Crown", Category: CategoryHeadgear, Subtype: "hat", Price: 200, Rarity: RarityLegendary, Emoji: "👑", Description: "Ultimate status symbol"},
	{ID: "neural-headset", Name: "Neural Headset", Category: CategoryHeadgear, Subtype: "helmet", Price: 150, Rarity: RarityEpic, Emoji: "🎧", Description: "Direct neural interface"},

	{ID: "cyber-sword", Name: "Cyber Sword", Category: CategoryWeapon, Subtype: "sword", Price: 75, Rarity: RarityRare, Emoji: "⚔️", Description: "High-tech energy blade"},
	{ID: "data-axe", Name: "Data Axe", Category: CategoryWeapon, Subtype: "axe", Price: 80, Rarity: RarityRare, Emoji: "🪓", Description: "Cleaves through firewalls"},
	{ID: "hack-staff", Name: "Hacker's Staff", Category: CategoryWeapon, Subtype: "staff", Price: 90, Rarity: RarityEpic, Emoji: "🔮", Description: "Channel digital magic"},
	{ID: "stealth-dagger", Name: "Stealth Dagger", Category: CategoryWeapon, Subtype: "dagger", Price: 45, Rarity: RarityCommon, Emoji: "🗡️", Description: "Silent and deadly"},
	{ID: "plasma-rifle", Name: "Plasma Rifle", Category: CategoryWeapon, Subtype: "rifle", Price: 120, Rarity: RarityEpic, Emoji: "🔫", Description: "Advanced energy weapon"},
	{ID: "legendary-blade", Name: "Excalibur.exe", Category: CategoryWeapon, Subtype: "sword", Price: 300, Rarity: RarityLegendary, Emoji: "🗡️", Description: "The ultimate cyber weapon"},

	{ID: "digital-shield", Name: "Digital Shield", Category: CategoryShield, Price: 60, Rarity: RarityRare, Emoji: "🛡️", Description: "Advanced defensive matrix"},
	{ID: "firewall-barrier", Name: "Firewall Barrier", Category: CategoryShield, Price: 85, Rarity: RarityEpic, Emoji: "🔰", Description: "Impenetrable cyber defense"},
	{ID: "quantum-armor", Name: "Quantum Armor", Category: CategoryShield, Price: 110, Rarity: RarityEpic, Emoji: "🦺", Description: "Probability-based protection"},
	{ID: "aegis-protocol", Name: "Aegis Protocol", Category: CategoryShield, Price: 250, Rarity: RarityLegendary, Emoji: "⚔️", Description: "Mythical defensive system"},

	{ID: "hacker-goggles", Name: "Hacker Goggles", Category: CategoryAccessory, Subtype: "eyewear", Price: 30, Rarity: RarityCommon, Emoji: "🕶️", Description: "See through the matrix"},
	{ID: "cyber-cape", Name: "Cyber Cape", Category: CategoryAccessory, Subtype: "cloak", Price: 70, Rarity: RarityRare, Emoji: "🧥", Description: "Dramatic flair for cyber heroes"},
	{ID: "data-gloves", Name: "Data Gloves", Category: CategoryAccessory, Subtype: "gloves", Price: 40, Rarity: RarityCommon, Emoji: "🧤", Description: "Enhanced interface control"},
	{ID: "power-belt", Name: "Power Belt", Category: CategoryAccessory, Subtype: "belt", Price: 55, Rarity: RarityRare, Emoji: "📿", Description: "Utility storage and power boost"},
	{ID: "holo-earrings", Name: "Holo Earrings", Category: CategoryAccessory, Subtype: "jewelry", Price: 35, Rarity: RarityCommon, Emoji: "💎", Description: "Stylish holographic accessories"},
	{ID: "phantom-cloak", Name: "Phantom Cloak", Category: CategoryAccessory, Subtype: "cloak", Price: 180, Rarity: RarityEpic, Emoji: "👻", Description: "Become one with the shadows"},

	{ID: "agent-suit", Name: "Agent Suit", Category: CategoryOutfit, Price: 100, Rarity: RarityRare, Emoji: "🤵", Description: "Professional cyber agent attire"},
	{ID: "hacker-hoodie", Name: "Hacker Hoodie", Category: CategoryOutfit, Price: 65, Rarity: RarityCommon, Emoji: "👕", Description: "Casual underground style"},
	{ID: "combat-gear", Name: "Combat Gear", Category: CategoryOutfit, Price: 130, Rarity: RarityEpic, Emoji: "🥋", Description: "Battle-ready tactical outfit"},
	{ID: "elite-uniform", Name: "Elite Uniform", Category: CategoryOutfit, Price: 220, Rarity: RarityLegendary, Emoji: "👔", Description: "Top-tier agent uniform"},

	{ID: "data-drone", Name: "Data Drone", Category: CategoryCompanion, Price: 90, Rarity: RarityRare, Emoji: "🚁", Description: "Your personal reconnaissance bot"},
	{ID: "cyber-pet", Name: "Cyber Pet", Category: CategoryCompanion, Price: 120, Rarity: RarityEpic, Emoji: "🐱", Description: "Digital companion with AI personality"},
	{ID: "guardian-spirit", Name: "Guardian Spirit", Category: CategoryCompanion, Price: 200, Rarity: RarityLegendary, Emoji: "👻", Description: "Mystical digital protector"},
}
