// Package economy prices board properties: purchase, rent, and upgrades. All
// amounts are integral gold; fractions are truncated.
package economy

import "github.com/louisbranch/wayfarer/internal/game/domain"

// basePrices are fixed per tile kind.
var basePrices = map[domain.TileKind]int{
	domain.TileMunicipality:      2000,
	domain.TileProvincialCapital: 1500,
	domain.TilePrefectureCity:    1000,
	domain.TileCounty:            500,
	domain.TileVillage:           300,
	domain.TileVacant:            200,
}

// rentMultipliers scale rent per tile kind.
var rentMultipliers = map[domain.TileKind]float64{
	domain.TileMunicipality:      2.0,
	domain.TileProvincialCapital: 1.5,
	domain.TilePrefectureCity:    1.3,
	domain.TileCounty:            1.2,
	domain.TileVillage:           1.0,
	domain.TileVacant:            1.0,
}

// PurchasePrice returns the cost of buying the tile, or 0 when the tile kind
// cannot be owned. Tiles further from the start are pricier in 20% steps per
// ten positions.
func PurchasePrice(tile domain.Tile) int {
	base, ok := basePrices[tile.Kind]
	if !ok {
		return 0
	}
	return int(float64(base) * (1 + 0.2*float64(tile.Position/10)))
}

// Rent returns what a visitor owes the owner of the tile at the given
// property level.
func Rent(tile domain.Tile, level int) int {
	price := PurchasePrice(tile)
	if price == 0 {
		return 0
	}
	mult, ok := rentMultipliers[tile.Kind]
	if !ok {
		mult = 1.0
	}
	return int(float64(price) * 0.1 * mult * (1 + 0.5*float64(level)))
}

// UpgradeCost returns the price of raising the property from its current
// level, or 0 when the level cap has been reached.
func UpgradeCost(tile domain.Tile, currentLevel int) int {
	if currentLevel >= domain.MaxPropertyLevel {
		return 0
	}
	return int(float64(PurchasePrice(tile)) * 0.5 * float64(currentLevel))
}
