package app

import (
	"context"
	"errors"

	"github.com/louisbranch/wayfarer/internal/core/combat"
	"github.com/louisbranch/wayfarer/internal/core/stats"
	"github.com/louisbranch/wayfarer/internal/game/domain"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// Gold penalty taken from the loser of a PvP battle: 60% of their purse,
// softened by 5% per round fought past the first, never below 20%.
const (
	pvpPenaltyBase     = 0.6
	pvpPenaltyPerRound = 0.05
	pvpPenaltyFloor    = 0.2
)

// PvPReport is the outcome of a player-versus-player battle.
type PvPReport struct {
	Attacker    domain.Player
	Defender    domain.Player
	Log         []string
	AttackerWon bool
	Rounds      int
	GoldPenalty int
	ItemDropped string
}

// AttackPlayer resolves a PvP battle against the named defender. Spouses of
// both sides may join in as allies. The loser forfeits part of their gold to
// the winner and drops one random unequipped item.
func (s *Service) AttackPlayer(ctx context.Context, attackerID, defenderNickname string) (PvPReport, error) {
	ctx, span := s.tracer.Start(ctx, "game.AttackPlayer")
	defer span.End()

	defender, err := s.getPlayerByNickname(ctx, defenderNickname)
	if err != nil {
		return PvPReport{}, err
	}
	if defender.ID == attackerID {
		return PvPReport{}, apperrors.New(apperrors.CodeBattleSelfTarget, "cannot attack yourself")
	}

	unlock := s.locks.lockPair(attackerID, defender.ID)
	defer unlock()

	attacker, err := s.getPlayer(ctx, attackerID)
	if err != nil {
		return PvPReport{}, err
	}
	defender, err = s.getPlayer(ctx, defender.ID)
	if err != nil {
		return PvPReport{}, err
	}

	if attacker.HP <= 0 {
		return PvPReport{}, apperrors.New(apperrors.CodePlayerDown,
			"player has no HP left; heal before attacking")
	}
	if defender.HP <= 0 {
		return PvPReport{}, apperrors.New(apperrors.CodeBattleCombatantDown,
			"target has no HP left")
	}
	if err := s.checkCooldown(attacker.LastActionAt(domain.ActionBattle), AttackCooldown); err != nil {
		return PvPReport{}, err
	}

	res, err := combat.Resolve(s.rng, combat.PvP,
		stats.PlayerCombatant(attacker, s.catalog),
		stats.PlayerCombatant(defender, s.catalog),
		s.allyCombatants(ctx, attacker, defender.ID),
		s.allyCombatants(ctx, defender, attacker.ID))
	if err != nil {
		return PvPReport{}, err
	}

	attacker.HP = res.AttackerHP
	defender.HP = res.DefenderHP

	winner, loser := &attacker, &defender
	if !res.AttackerWon {
		winner, loser = &defender, &attacker
	}

	frac := pvpPenaltyBase - pvpPenaltyPerRound*float64(res.Rounds-1)
	if frac < pvpPenaltyFloor {
		frac = pvpPenaltyFloor
	}
	penalty := int(float64(loser.Gold) * frac)
	loser.Gold -= penalty
	winner.Gold += penalty

	dropped := s.dropRandomItem(loser)

	attacker.RecordAction(domain.ActionBattle, s.clock())

	// Two independent saves; both are attempted even if the first fails.
	if err := errors.Join(
		s.store.SavePlayer(ctx, attacker),
		s.store.SavePlayer(ctx, defender),
	); err != nil {
		return PvPReport{}, err
	}

	return PvPReport{
		Attacker:    attacker,
		Defender:    defender,
		Log:         res.Log,
		AttackerWon: res.AttackerWon,
		Rounds:      res.Rounds,
		GoldPenalty: penalty,
		ItemDropped: dropped,
	}, nil
}

// allyCombatants builds battle views for a player's spouses. A spouse who is
// the opposing combatant, is down, or cannot be loaded sits the fight out.
func (s *Service) allyCombatants(ctx context.Context, p domain.Player, opponentID string) []domain.Combatant {
	var allies []domain.Combatant
	for _, nickname := range p.Spouses {
		spouse, err := s.store.GetPlayerByNickname(ctx, nickname)
		if err != nil || spouse.ID == opponentID || spouse.HP <= 0 {
			continue
		}
		allies = append(allies, stats.PlayerCombatant(spouse, s.catalog))
	}
	return allies
}

// dropRandomItem removes one random unequipped item from the player and
// returns its name, empty when nothing was droppable. The item is destroyed,
// not transferred.
func (s *Service) dropRandomItem(p *domain.Player) string {
	var candidates []int
	equippedSeen := map[string]int{}
	for i, name := range p.Inventory {
		if equippedSeen[name] < p.EquippedCount(name) {
			equippedSeen[name]++
			continue
		}
		candidates = append(candidates, i)
	}
	if len(candidates) == 0 {
		return ""
	}
	idx := candidates[s.rng.Intn(len(candidates))]
	name := p.Inventory[idx]
	p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
	return name
}
