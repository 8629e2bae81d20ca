// Package fishing implements the fishing minigame: rod tiers, catch chances,
// durability wear, and coin payouts.
package fishing

import (
	"time"

	"github.com/louisbranch/wayfarer/internal/core/dice"
	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/items"
)

// Cooldown between fishing attempts.
const Cooldown = 3 * time.Minute

// MaxDurability is the wear a fresh rod can take before breaking.
const MaxDurability = 100

// coinRate converts a fish's list price into the base coin payout.
const coinRate = 0.3

// Rod describes a rod tier's behavior.
type Rod struct {
	SuccessChance   float64
	DurabilityBonus float64
	CoinBonus       float64
}

var rods = map[string]Rod{
	"Wooden Rod": {SuccessChance: 0.6, DurabilityBonus: 1.0, CoinBonus: 1.0},
	"Iron Rod":   {SuccessChance: 0.75, DurabilityBonus: 1.2, CoinBonus: 1.2},
	"Golden Rod": {SuccessChance: 0.9, DurabilityBonus: 1.5, CoinBonus: 1.5},
}

// RodStats looks up a rod tier by item name.
func RodStats(name string) (Rod, bool) {
	r, ok := rods[name]
	return r, ok
}

// IsRod reports whether the item name is a usable fishing rod.
func IsRod(name string) bool {
	_, ok := rods[name]
	return ok
}

// Outcome is the result of one fishing attempt. DurabilityCost is charged
// whether or not anything bit.
type Outcome struct {
	Caught         bool
	Fish           domain.Item
	Coins          int
	DurabilityCost int
}

// Attempt rolls one cast with the given rod. Better rods hook more often,
// wear slower, and pay more per catch.
func Attempt(rng dice.RNG, catalog items.Catalog, rod Rod) Outcome {
	if !dice.Chance(rng, rod.SuccessChance) {
		return Outcome{DurabilityCost: wear(rng, 1, 5, rod.DurabilityBonus)}
	}

	fish, ok := catalog.DrawFish(rng)
	if !ok {
		return Outcome{DurabilityCost: wear(rng, 1, 5, rod.DurabilityBonus)}
	}

	coins := int(float64(fish.Price) * coinRate * rod.CoinBonus)
	if coins < 1 {
		coins = 1
	}
	return Outcome{
		Caught:         true,
		Fish:           fish,
		Coins:          coins,
		DurabilityCost: wear(rng, 5, 15, rod.DurabilityBonus),
	}
}

// wear draws a base cost in [lo, hi] and divides it by the rod's durability
// bonus, charging at least 1.
func wear(rng dice.RNG, lo, hi int, bonus float64) int {
	base := lo + rng.Intn(hi-lo+1)
	cost := int(float64(base) / bonus)
	if cost < 1 {
		return 1
	}
	return cost
}
