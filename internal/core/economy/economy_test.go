package economy

import (
	"testing"

	"github.com/louisbranch/wayfarer/internal/core/board"
	"github.com/louisbranch/wayfarer/internal/game/domain"
)

func TestPurchasePrice(t *testing.T) {
	tcs := []struct {
		name string
		tile domain.Tile
		want int
	}{
		{
			name: "village near start",
			tile: domain.Tile{Position: 10, Kind: domain.TileVillage},
			want: 360, // 300 x 1.2
		},
		{
			name: "municipality mid-board",
			tile: domain.Tile{Position: 25, Kind: domain.TileMunicipality},
			want: 2800, // 2000 x 1.4
		},
		{
			name: "capital far out",
			tile: domain.Tile{Position: 43, Kind: domain.TileProvincialCapital},
			want: 2700, // 1500 x 1.8
		},
		{
			name: "county in first stretch",
			tile: domain.Tile{Position: 2, Kind: domain.TileCounty},
			want: 500, // 500 x 1.0
		},
		{
			name: "forest cannot be priced",
			tile: domain.Tile{Position: 1, Kind: domain.TileForest},
			want: 0,
		},
		{
			name: "start cannot be priced",
			tile: domain.Tile{Position: 0, Kind: domain.TileStart},
			want: 0,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := PurchasePrice(tc.tile); got != tc.want {
				t.Errorf("PurchasePrice = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRent(t *testing.T) {
	county := domain.Tile{Position: 2, Kind: domain.TileCounty} // price 500

	tcs := []struct {
		name  string
		level int
		want  int
	}{
		{name: "level 1", level: 1, want: 90},  // 500 x 0.1 x 1.2 x 1.5
		{name: "level 2", level: 2, want: 120}, // 500 x 0.1 x 1.2 x 2.0
		{name: "level 3", level: 3, want: 150}, // 500 x 0.1 x 1.2 x 2.5
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := Rent(county, tc.level); got != tc.want {
				t.Errorf("Rent(level %d) = %d, want %d", tc.level, got, tc.want)
			}
		})
	}
}

func TestRentOnUnownableTileIsZero(t *testing.T) {
	if got := Rent(domain.Tile{Position: 9, Kind: domain.TileOpportunity}, 1); got != 0 {
		t.Errorf("Rent = %d, want 0", got)
	}
}

func TestUpgradeCost(t *testing.T) {
	county := domain.Tile{Position: 2, Kind: domain.TileCounty} // price 500

	tcs := []struct {
		name  string
		level int
		want  int
	}{
		{name: "from level 1", level: 1, want: 250},
		{name: "from level 2", level: 2, want: 500},
		{name: "at cap", level: 3, want: 0},
		{name: "beyond cap", level: 4, want: 0},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := UpgradeCost(county, tc.level); got != tc.want {
				t.Errorf("UpgradeCost(level %d) = %d, want %d", tc.level, got, tc.want)
			}
		})
	}
}

func TestEveryOwnableBoardTileHasAPrice(t *testing.T) {
	for _, tile := range board.Tiles() {
		price := PurchasePrice(tile)
		if tile.Ownable() && price <= 0 {
			t.Errorf("ownable tile %d (%s) has no price", tile.Position, tile.Kind)
		}
		if !tile.Ownable() && price != 0 {
			t.Errorf("unownable tile %d (%s) has price %d", tile.Position, tile.Kind, price)
		}
	}
}
