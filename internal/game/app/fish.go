package app

import (
	"context"
	"sort"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/fishing"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// rodPreference orders rod tiers best first.
var rodPreference = []string{"Golden Rod", "Iron Rod", "Wooden Rod"}

// FishReport is the outcome of one fishing trip.
type FishReport struct {
	Player     domain.Player
	RodUsed    string
	Caught     bool
	Fish       domain.Item
	Coins      int
	Durability int
	RodBroke   bool
}

// Fish casts with the best rod in the player's inventory. The rod wears down
// whether or not anything bites and shatters at zero durability.
func (s *Service) Fish(ctx context.Context, playerID string) (FishReport, error) {
	ctx, span := s.tracer.Start(ctx, "game.Fish")
	defer span.End()

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return FishReport{}, err
	}
	if err := s.checkCooldown(player.LastActionAt(domain.ActionFishing), fishing.Cooldown); err != nil {
		return FishReport{}, err
	}

	rodName := ""
	for _, name := range rodPreference {
		if player.HasItem(name) {
			rodName = name
			break
		}
	}
	if rodName == "" {
		return FishReport{}, apperrors.New(apperrors.CodeFishingRodMissing,
			"a fishing rod is required")
	}
	rod, _ := fishing.RodStats(rodName)

	outcome := fishing.Attempt(s.rng, s.catalog, rod)

	durability, ok := player.RodDurability[rodName]
	if !ok {
		durability = fishing.MaxDurability
	}
	durability -= outcome.DurabilityCost

	report := FishReport{RodUsed: rodName}
	if durability <= 0 {
		player.RemoveItem(rodName)
		delete(player.RodDurability, rodName)
		report.RodBroke = true
		durability = 0
	} else {
		if player.RodDurability == nil {
			player.RodDurability = map[string]int{}
		}
		player.RodDurability[rodName] = durability
	}
	report.Durability = durability

	if outcome.Caught {
		player.AddItem(outcome.Fish.Name)
		player.Gold += outcome.Coins
		report.Caught = true
		report.Fish = outcome.Fish
		report.Coins = outcome.Coins
	}

	player.RecordAction(domain.ActionFishing, s.clock())
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return FishReport{}, err
	}
	report.Player = player
	return report, nil
}

// CollectionEntry is one fish species and how many copies the player holds.
type CollectionEntry struct {
	Fish  domain.Item
	Count int
}

// FishCollection returns the full fish roster, rarest first with names
// breaking ties, with the player's held count per species. Sold or given fish
// leave the collection; it reflects the inventory, not all-time catches.
func (s *Service) FishCollection(ctx context.Context, playerID string) ([]CollectionEntry, error) {
	ctx, span := s.tracer.Start(ctx, "game.FishCollection")
	defer span.End()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, name := range player.Inventory {
		counts[name]++
	}

	fish := s.catalog.Fish()
	sort.SliceStable(fish, func(i, j int) bool {
		if fish[i].Rarity != fish[j].Rarity {
			return fish[i].Rarity > fish[j].Rarity
		}
		return fish[i].Name < fish[j].Name
	})

	entries := make([]CollectionEntry, 0, len(fish))
	for _, f := range fish {
		entries = append(entries, CollectionEntry{Fish: f, Count: counts[f.Name]})
	}
	return entries, nil
}
