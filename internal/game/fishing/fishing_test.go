package fishing

import (
	"testing"

	"github.com/louisbranch/wayfarer/internal/game/items"
)

// seqRNG replays Float64 and Intn draws independently.
type seqRNG struct {
	floats []float64
	ints   []int
}

func (s *seqRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *seqRNG) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func TestRodStats(t *testing.T) {
	tcs := []struct {
		name   string
		chance float64
		ok     bool
	}{
		{name: "Wooden Rod", chance: 0.6, ok: true},
		{name: "Iron Rod", chance: 0.75, ok: true},
		{name: "Golden Rod", chance: 0.9, ok: true},
		{name: "Iron Sword", ok: false},
	}
	for _, tc := range tcs {
		rod, ok := RodStats(tc.name)
		if ok != tc.ok {
			t.Errorf("RodStats(%q) ok = %v, want %v", tc.name, ok, tc.ok)
			continue
		}
		if ok && rod.SuccessChance != tc.chance {
			t.Errorf("RodStats(%q).SuccessChance = %v, want %v", tc.name, rod.SuccessChance, tc.chance)
		}
	}
}

func TestAttemptCatch(t *testing.T) {
	catalog := items.Default()
	rod, _ := RodStats("Golden Rod")
	// Success roll 0.1 < 0.9, fish draw 0.0 lands on the first weighted fish,
	// wear draw 0 gives base cost 5.
	rng := &seqRNG{floats: []float64{0.1, 0.0}, ints: []int{0}}

	out := Attempt(rng, catalog, rod)

	if !out.Caught {
		t.Fatal("attempt should catch")
	}
	if out.Fish.Name == "" {
		t.Fatal("caught fish has no name")
	}
	wantCoins := int(float64(out.Fish.Price) * 0.3 * 1.5)
	if wantCoins < 1 {
		wantCoins = 1
	}
	if out.Coins != wantCoins {
		t.Errorf("coins = %d, want %d", out.Coins, wantCoins)
	}
	// Base 5 divided by the 1.5 durability bonus.
	if out.DurabilityCost != 3 {
		t.Errorf("durability cost = %d, want 3", out.DurabilityCost)
	}
}

func TestAttemptMiss(t *testing.T) {
	catalog := items.Default()
	rod, _ := RodStats("Wooden Rod")
	// Success roll 0.95 misses even the golden rod; wear draw 4 gives base 5.
	rng := &seqRNG{floats: []float64{0.95}, ints: []int{4}}

	out := Attempt(rng, catalog, rod)

	if out.Caught {
		t.Fatal("attempt should miss")
	}
	if out.DurabilityCost != 5 {
		t.Errorf("durability cost = %d, want 5", out.DurabilityCost)
	}
	if out.Coins != 0 {
		t.Errorf("coins = %d, want 0", out.Coins)
	}
}

func TestWearNeverFree(t *testing.T) {
	rod, _ := RodStats("Golden Rod")
	// Base cost 1 divided by 1.5 truncates to 0 and must be raised to 1.
	rng := &seqRNG{floats: []float64{0.95}, ints: []int{0}}

	out := Attempt(rng, items.Default(), rod)

	if out.DurabilityCost != 1 {
		t.Errorf("durability cost = %d, want 1", out.DurabilityCost)
	}
}
