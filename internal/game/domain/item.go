package domain

// ItemKind classifies catalog entries.
type ItemKind string

const (
	ItemWeapon     ItemKind = "weapon"
	ItemArmor      ItemKind = "armor"
	ItemConsumable ItemKind = "consumable"
	ItemFishingRod ItemKind = "fishing_rod"
	ItemFish       ItemKind = "fish"
)

// Item is an immutable catalog entry, looked up by name.
type Item struct {
	Name         string
	Description  string
	Kind         ItemKind
	HPBonus      int
	AttackBonus  int
	DefenseBonus int
	Price        int
	Rarity       int
}

// Equipable reports whether the item can occupy an equipment slot.
func (i Item) Equipable() bool {
	return i.Kind == ItemWeapon || i.Kind == ItemArmor
}
