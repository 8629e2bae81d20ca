package items

import (
	"testing"

	"github.com/louisbranch/wayfarer/internal/game/domain"
)

func TestDefaultCatalogLookup(t *testing.T) {
	c := Default()

	sword, ok := c.Item("Iron Sword")
	if !ok {
		t.Fatal("Iron Sword missing from catalog")
	}
	if sword.Kind != domain.ItemWeapon || sword.AttackBonus != 10 || sword.Price != 300 {
		t.Errorf("Iron Sword = %+v", sword)
	}

	if _, ok := c.Item("Phantom Blade"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestShopStockExcludesFish(t *testing.T) {
	c := Default()
	for _, item := range c.ShopStock() {
		if item.Kind == domain.ItemFish {
			t.Errorf("fish %q in shop stock", item.Name)
		}
	}
	if len(c.ShopStock())+len(c.Fish()) != len(c.All()) {
		t.Error("shop stock and fish should partition the catalog")
	}
}

func TestSellPrice(t *testing.T) {
	tcs := []struct {
		price int
		want  int
	}{
		{price: 100, want: 60},
		{price: 300, want: 180},
		{price: 25, want: 15},
		{price: 1, want: 0},
	}
	for _, tc := range tcs {
		got := SellPrice(domain.Item{Price: tc.price})
		if got != tc.want {
			t.Errorf("SellPrice(%d) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

type fixedRNG struct{ f float64 }

func (r fixedRNG) Float64() float64 { return r.f }
func (r fixedRNG) Intn(n int) int   { return 0 }

func TestDrawFishCoversWeights(t *testing.T) {
	c := Default()

	low, ok := c.DrawFish(fixedRNG{f: 0.0})
	if !ok {
		t.Fatal("catalog has fish")
	}
	if low.Kind != domain.ItemFish {
		t.Errorf("drew %+v", low)
	}

	high, _ := c.DrawFish(fixedRNG{f: 0.999})
	if high.Kind != domain.ItemFish {
		t.Errorf("drew %+v", high)
	}
	if low.Name == high.Name {
		t.Error("extreme rolls should land on different fish")
	}
}

func TestDrawFishEmptyCatalog(t *testing.T) {
	c := NewCatalog(nil)
	if _, ok := c.DrawFish(fixedRNG{}); ok {
		t.Error("empty catalog should report no catch")
	}
}

func TestEquipableKinds(t *testing.T) {
	c := Default()
	for _, item := range c.All() {
		want := item.Kind == domain.ItemWeapon || item.Kind == domain.ItemArmor
		if item.Equipable() != want {
			t.Errorf("%s (%s) equipable = %v", item.Name, item.Kind, item.Equipable())
		}
	}
}
