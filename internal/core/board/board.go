// Package board defines the circular 50-tile world map and position
// advancement. Tile dispatch (combat, events, property actions) happens in the
// game service; this package only answers "where did the player land and what
// is there".
package board

import (
	"github.com/louisbranch/wayfarer/internal/core/dice"
	"github.com/louisbranch/wayfarer/internal/game/domain"
)

// Size is the number of tiles on the board.
const Size = 50

// StartBonus is the flat gold award for landing on the start tile.
const StartBonus = 200

// DiceSides is the die used for board advancement.
const DiceSides = 6

// namedTiles lists every position that is not default forest.
var namedTiles = map[int]domain.Tile{
	0: {Position: 0, Name: "Aldercrest", Kind: domain.TileStart},

	12: {Position: 12, Name: "Thornreach", Kind: domain.TileMunicipality},
	25: {Position: 25, Name: "Emberhold", Kind: domain.TileMunicipality},
	37: {Position: 37, Name: "Gullsport", Kind: domain.TileMunicipality},

	5:  {Position: 5, Name: "Westmere", Kind: domain.TileProvincialCapital},
	6:  {Position: 6, Name: "Riverrest", Kind: domain.TileProvincialCapital},
	17: {Position: 17, Name: "Highfield", Kind: domain.TileProvincialCapital},
	18: {Position: 18, Name: "Larkspire", Kind: domain.TileProvincialCapital},
	30: {Position: 30, Name: "Bridewell", Kind: domain.TileProvincialCapital},
	31: {Position: 31, Name: "Stonegate", Kind: domain.TileProvincialCapital},
	42: {Position: 42, Name: "Oakhaven", Kind: domain.TileProvincialCapital},
	43: {Position: 43, Name: "Fallowmoor", Kind: domain.TileProvincialCapital},

	7:  {Position: 7, Name: "Milldale", Kind: domain.TilePrefectureCity},
	8:  {Position: 8, Name: "Saltmarsh", Kind: domain.TilePrefectureCity},
	20: {Position: 20, Name: "Cinderford", Kind: domain.TilePrefectureCity},
	21: {Position: 21, Name: "Wexcombe", Kind: domain.TilePrefectureCity},
	32: {Position: 32, Name: "Ashby", Kind: domain.TilePrefectureCity},
	33: {Position: 33, Name: "Pellbrook", Kind: domain.TilePrefectureCity},
	45: {Position: 45, Name: "Duskmoor", Kind: domain.TilePrefectureCity},
	46: {Position: 46, Name: "Tidewater", Kind: domain.TilePrefectureCity},

	2:  {Position: 2, Name: "Foxglove Crossing", Kind: domain.TileCounty},
	3:  {Position: 3, Name: "Reedham", Kind: domain.TileCounty},
	15: {Position: 15, Name: "Briarwick", Kind: domain.TileCounty},
	16: {Position: 16, Name: "Coldspring", Kind: domain.TileCounty},
	27: {Position: 27, Name: "Hollowbourne", Kind: domain.TileCounty},
	28: {Position: 28, Name: "Graywall", Kind: domain.TileCounty},
	40: {Position: 40, Name: "Netherfen", Kind: domain.TileCounty},
	41: {Position: 41, Name: "Applemere", Kind: domain.TileCounty},

	10: {Position: 10, Name: "Sheepfold", Kind: domain.TileVillage},
	11: {Position: 11, Name: "Tanner's Rest", Kind: domain.TileVillage},
	22: {Position: 22, Name: "Elmhollow", Kind: domain.TileVillage},
	23: {Position: 23, Name: "Peatbog", Kind: domain.TileVillage},
	35: {Position: 35, Name: "Quernstead", Kind: domain.TileVillage},
	36: {Position: 36, Name: "Mossbrook", Kind: domain.TileVillage},
	47: {Position: 47, Name: "Lanternlea", Kind: domain.TileVillage},
	48: {Position: 48, Name: "Ferryside", Kind: domain.TileVillage},

	9:  {Position: 9, Name: "Crossroads Shrine", Kind: domain.TileOpportunity},
	19: {Position: 19, Name: "Wheel of Fortune", Kind: domain.TileOpportunity},
	34: {Position: 34, Name: "Wishing Well", Kind: domain.TileOpportunity},
	44: {Position: 44, Name: "Fate's Bend", Kind: domain.TileOpportunity},
}

// TileAt returns the tile for a board position. Unlisted positions are
// wilderness where monsters roam.
func TileAt(position int) domain.Tile {
	position = ((position % Size) + Size) % Size
	if t, ok := namedTiles[position]; ok {
		return t
	}
	return domain.Tile{Position: position, Name: "Mirkwood Wilds", Kind: domain.TileForest}
}

// Tiles returns the full board in position order.
func Tiles() []domain.Tile {
	tiles := make([]domain.Tile, Size)
	for i := range tiles {
		tiles[i] = TileAt(i)
	}
	return tiles
}

// RollDice draws a board advancement roll in [1, DiceSides].
func RollDice(rng dice.RNG) int {
	return dice.Roll(rng, DiceSides)
}

// Advance moves a position forward by roll steps, wrapping around the board,
// and returns the landing tile.
func Advance(position, roll int) (int, domain.Tile) {
	next := ((position+roll)%Size + Size) % Size
	return next, TileAt(next)
}
