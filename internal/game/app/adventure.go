package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/wayfarer/internal/core/board"
	"github.com/louisbranch/wayfarer/internal/core/combat"
	"github.com/louisbranch/wayfarer/internal/core/economy"
	"github.com/louisbranch/wayfarer/internal/core/progression"
	"github.com/louisbranch/wayfarer/internal/core/stats"
	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/events"
	"github.com/louisbranch/wayfarer/internal/game/storage"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// BattleReport describes a wilderness encounter.
type BattleReport struct {
	Monster  domain.Monster
	Log      []string
	Won      bool
	Rounds   int
	PlayerHP int
	Reward   progression.VictoryReward
}

// AdventureOutcome is everything that happened during one board advance.
// Exactly one of the dispatch fields is populated, depending on the tile.
type AdventureOutcome struct {
	Player domain.Player
	Roll   int
	Tile   domain.Tile

	// Start tile.
	GoldBonus int

	// Wilderness tile.
	Battle *BattleReport

	// Opportunity tile.
	Event *events.Event

	// Ownable tiles.
	PurchasePrice int    // tile is unowned and for sale
	UpgradeCost   int    // owned by the mover, below the level cap
	OwnerNickname string // owned by someone else
	RentPaid      int
	RentDue       int // rent the mover could not afford
}

// GoOut rolls the dice, advances the player, and resolves whatever the
// landing tile holds. The move itself always persists; rent owed to another
// player is credited after the mover's own record is saved.
func (s *Service) GoOut(ctx context.Context, playerID string) (AdventureOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "game.GoOut")
	defer span.End()

	out, ownerID, rent, err := s.advance(ctx, playerID)
	if err != nil {
		return AdventureOutcome{}, err
	}
	if ownerID != "" && rent > 0 {
		// Credited outside the mover's lock so two players landing on each
		// other's streets cannot deadlock.
		if err := s.creditGold(ctx, ownerID, rent); err != nil {
			return out, fmt.Errorf("credit rent to owner: %w", err)
		}
	}
	return out, nil
}

// advance runs the dice roll and tile dispatch under the mover's lock. It
// returns the owner to credit and the rent amount when the mover paid rent.
func (s *Service) advance(ctx context.Context, playerID string) (AdventureOutcome, string, int, error) {
	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return AdventureOutcome{}, "", 0, err
	}
	if player.HP <= 0 {
		return AdventureOutcome{}, "", 0, apperrors.New(apperrors.CodePlayerDown,
			"player has no HP left; heal before adventuring")
	}
	if err := s.checkCooldown(player.LastActionAt(domain.ActionBattle), AdventureCooldown); err != nil {
		return AdventureOutcome{}, "", 0, err
	}

	roll := board.RollDice(s.rng)
	if roll < 1 || roll > board.DiceSides {
		return AdventureOutcome{}, "", 0, apperrors.WithMetadata(apperrors.CodeInvalidDiceRoll,
			"dice roll out of range", map[string]string{"roll": fmt.Sprintf("%d", roll)})
	}

	pos, tile := board.Advance(player.Position, roll)
	player.Position = pos
	player.RecordAction(domain.ActionBattle, s.clock())

	out := AdventureOutcome{Roll: roll, Tile: tile}
	ownerID := ""
	rentPaid := 0

	switch tile.Kind {
	case domain.TileStart:
		player.Gold += board.StartBonus
		out.GoldBonus = board.StartBonus

	case domain.TileForest:
		out.Battle, err = s.fightMonster(&player)
		if err != nil {
			return AdventureOutcome{}, "", 0, err
		}

	case domain.TileOpportunity:
		ev := s.table.Draw(s.rng)
		player.Gold += ev.GoldDelta
		out.Event = &ev

	default:
		ownerID, rentPaid, err = s.resolveOwnable(ctx, &player, tile, &out)
		if err != nil {
			return AdventureOutcome{}, "", 0, err
		}
	}

	if err := s.store.SavePlayer(ctx, player); err != nil {
		return AdventureOutcome{}, "", 0, err
	}
	out.Player = player
	return out, ownerID, rentPaid, nil
}

// fightMonster spawns a level-scaled monster and resolves the battle,
// mutating the player with the outcome. The caller has already verified the
// player is standing, so the engine's down-combatant refusal only fires on a
// malformed bestiary entry.
func (s *Service) fightMonster(player *domain.Player) (*BattleReport, error) {
	monster := s.bestiary.Spawn(s.rng, player.Level)
	res, err := combat.Resolve(s.rng, combat.PvE,
		stats.PlayerCombatant(*player, s.catalog),
		stats.MonsterCombatant(monster),
		nil, nil)
	if err != nil {
		return nil, err
	}

	report := &BattleReport{
		Monster: monster,
		Log:     res.Log,
		Won:     res.AttackerWon,
		Rounds:  res.Rounds,
	}
	if res.AttackerWon {
		player.HP = res.AttackerHP
		report.Reward = progression.ApplyVictory(player, monster)
	} else {
		player.HP = 0
	}
	report.PlayerHP = player.HP
	return report, nil
}

// resolveOwnable handles landing on a purchasable tile: price quote when
// vacant, upgrade quote when self-owned, rent when owned by another. Rent the
// mover cannot afford is refused, not partially charged.
func (s *Service) resolveOwnable(ctx context.Context, player *domain.Player, tile domain.Tile, out *AdventureOutcome) (ownerID string, rentPaid int, err error) {
	prop, err := s.store.GetProperty(ctx, tile.Position)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			out.PurchasePrice = economy.PurchasePrice(tile)
			return "", 0, nil
		}
		return "", 0, err
	}

	if prop.OwnerID == player.ID {
		out.UpgradeCost = economy.UpgradeCost(tile, prop.Level)
		return "", 0, nil
	}

	owner, err := s.getPlayer(ctx, prop.OwnerID)
	if err != nil {
		return "", 0, err
	}
	out.OwnerNickname = owner.Nickname

	rent := economy.Rent(tile, prop.Level)
	if player.Gold < rent {
		out.RentDue = rent
		return "", 0, nil
	}
	player.Gold -= rent
	out.RentPaid = rent
	return prop.OwnerID, rent, nil
}

// creditGold adds gold to another player under their own lock.
func (s *Service) creditGold(ctx context.Context, playerID string, amount int) error {
	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	player.Gold += amount
	return s.store.SavePlayer(ctx, player)
}
