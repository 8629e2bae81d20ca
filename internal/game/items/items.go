// Package items holds the fixed item catalog: weapons, armor, consumables,
// fishing rods, and the fish they catch. The catalog is a design constant;
// player records reference entries by name.
package items

import (
	"sort"

	"github.com/louisbranch/wayfarer/internal/core/dice"
	"github.com/louisbranch/wayfarer/internal/game/domain"
)

// Catalog is an immutable name-indexed item table.
type Catalog struct {
	byName map[string]domain.Item
	names  []string
}

// NewCatalog builds a catalog from a list of items. Later duplicates
// overwrite earlier ones.
func NewCatalog(list []domain.Item) Catalog {
	byName := make(map[string]domain.Item, len(list))
	for _, item := range list {
		byName[item.Name] = item
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return Catalog{byName: byName, names: names}
}

// Item looks up an entry by name.
func (c Catalog) Item(name string) (domain.Item, bool) {
	item, ok := c.byName[name]
	return item, ok
}

// All returns every entry in name order.
func (c Catalog) All() []domain.Item {
	list := make([]domain.Item, 0, len(c.names))
	for _, name := range c.names {
		list = append(list, c.byName[name])
	}
	return list
}

// ShopStock returns everything purchasable, which is the catalog minus fish.
// Fish enter the game only through fishing.
func (c Catalog) ShopStock() []domain.Item {
	var stock []domain.Item
	for _, item := range c.All() {
		if item.Kind != domain.ItemFish {
			stock = append(stock, item)
		}
	}
	return stock
}

// Fish returns the catchable fish in name order.
func (c Catalog) Fish() []domain.Item {
	var fish []domain.Item
	for _, item := range c.All() {
		if item.Kind == domain.ItemFish {
			fish = append(fish, item)
		}
	}
	return fish
}

// SellRate is the fraction of the list price paid when selling back.
const SellRate = 0.6

// SellPrice returns the gold received for selling one copy of the item.
func SellPrice(item domain.Item) int {
	return int(float64(item.Price) * SellRate)
}

// DrawFish picks a catch weighted by inverse rarity: a rarity-2 fish turns up
// half as often as a rarity-1 fish.
func (c Catalog) DrawFish(rng dice.RNG) (domain.Item, bool) {
	fish := c.Fish()
	if len(fish) == 0 {
		return domain.Item{}, false
	}
	total := 0.0
	for _, f := range fish {
		total += 1 / float64(rarityOrOne(f))
	}
	roll := rng.Float64() * total
	for _, f := range fish {
		roll -= 1 / float64(rarityOrOne(f))
		if roll < 0 {
			return f, true
		}
	}
	return fish[len(fish)-1], true
}

func rarityOrOne(item domain.Item) int {
	if item.Rarity < 1 {
		return 1
	}
	return item.Rarity
}

// Default returns the built-in catalog.
func Default() Catalog {
	return NewCatalog([]domain.Item{
		{Name: "Wooden Sword", Description: "A plain wooden training sword", Kind: domain.ItemWeapon, AttackBonus: 5, Price: 100, Rarity: 1},
		{Name: "Iron Sword", Description: "A sturdier iron blade", Kind: domain.ItemWeapon, AttackBonus: 10, Price: 300, Rarity: 2},
		{Name: "Steel Sword", Description: "A keen edge of forged steel", Kind: domain.ItemWeapon, AttackBonus: 20, Price: 600, Rarity: 3},
		{Name: "Runic Sword", Description: "A blade etched with old runes", Kind: domain.ItemWeapon, AttackBonus: 35, Price: 1000, Rarity: 4},
		{Name: "Dragonbone Sword", Description: "Carved from the bone of a dragon", Kind: domain.ItemWeapon, AttackBonus: 50, Price: 2000, Rarity: 5},
		{Name: "Chaos Blade", Description: "A sword humming with chaotic power", Kind: domain.ItemWeapon, AttackBonus: 75, Price: 4000, Rarity: 6},
		{Name: "Worldbreaker", Description: "A legendary weapon of ruin", Kind: domain.ItemWeapon, AttackBonus: 100, Price: 8000, Rarity: 7},

		{Name: "Cloth Armor", Description: "Simple quilted cloth", Kind: domain.ItemArmor, HPBonus: 20, DefenseBonus: 5, Price: 150, Rarity: 1},
		{Name: "Iron Armor", Description: "Solid iron plates", Kind: domain.ItemArmor, HPBonus: 50, DefenseBonus: 15, Price: 400, Rarity: 2},
		{Name: "Steel Plate", Description: "Full plate of forged steel", Kind: domain.ItemArmor, HPBonus: 100, DefenseBonus: 30, Price: 800, Rarity: 3},
		{Name: "Runic Mail", Description: "Mail woven with warding runes", Kind: domain.ItemArmor, HPBonus: 150, DefenseBonus: 45, Price: 1500, Rarity: 4},
		{Name: "Dragonscale Mail", Description: "Scales shed by an elder dragon", Kind: domain.ItemArmor, HPBonus: 200, DefenseBonus: 60, Price: 3000, Rarity: 5},
		{Name: "Sacred Armor", Description: "Armor blessed by the temple", Kind: domain.ItemArmor, HPBonus: 250, DefenseBonus: 75, Price: 6000, Rarity: 6},
		{Name: "Eternal Warplate", Description: "A legendary unbreakable harness", Kind: domain.ItemArmor, HPBonus: 300, DefenseBonus: 90, Price: 10000, Rarity: 7},

		{Name: "Bread", Description: "Restores 20 HP", Kind: domain.ItemConsumable, HPBonus: 20, Price: 20, Rarity: 1},
		{Name: "Healing Draught", Description: "Restores 50 HP", Kind: domain.ItemConsumable, HPBonus: 50, Price: 50, Rarity: 1},

		{Name: "Wooden Rod", Description: "A simple wooden fishing rod", Kind: domain.ItemFishingRod, Price: 200, Rarity: 1},
		{Name: "Iron Rod", Description: "A sturdier iron fishing rod", Kind: domain.ItemFishingRod, Price: 500, Rarity: 2},
		{Name: "Golden Rod", Description: "A rare rod of gilded make", Kind: domain.ItemFishingRod, Price: 1000, Rarity: 3},

		{Name: "Minnow", Description: "A tiny silver fish", Kind: domain.ItemFish, Price: 12, Rarity: 1},
		{Name: "Carp", Description: "A common river carp", Kind: domain.ItemFish, Price: 24, Rarity: 2},
		{Name: "Perch", Description: "A striped lake perch", Kind: domain.ItemFish, Price: 40, Rarity: 2},
		{Name: "Trout", Description: "A speckled brook trout", Kind: domain.ItemFish, Price: 60, Rarity: 3},
		{Name: "Pike", Description: "A toothy ambush hunter", Kind: domain.ItemFish, Price: 90, Rarity: 3},
		{Name: "Salmon", Description: "A strong upstream swimmer", Kind: domain.ItemFish, Price: 150, Rarity: 4},
		{Name: "Sturgeon", Description: "An armored river giant", Kind: domain.ItemFish, Price: 300, Rarity: 5},
		{Name: "Golden Koi", Description: "A koi said to grant luck", Kind: domain.ItemFish, Price: 600, Rarity: 6},
	})
}
