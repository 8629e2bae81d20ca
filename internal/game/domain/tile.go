package domain

// TileKind classifies a board position.
type TileKind string

const (
	TileStart             TileKind = "start"
	TileMunicipality      TileKind = "municipality"
	TileProvincialCapital TileKind = "provincial_capital"
	TilePrefectureCity    TileKind = "prefecture_city"
	TileCounty            TileKind = "county"
	TileVillage           TileKind = "village"
	TileVacant            TileKind = "vacant"
	TileOpportunity       TileKind = "opportunity"
	TileForest            TileKind = "forest"
)

// Tile is one fixed position on the circular board.
type Tile struct {
	Position int
	Name     string
	Kind     TileKind
}

// Ownable reports whether the tile can be bought as a property.
func (t Tile) Ownable() bool {
	switch t.Kind {
	case TileMunicipality, TileProvincialCapital, TilePrefectureCity,
		TileCounty, TileVillage, TileVacant:
		return true
	}
	return false
}
