// Package combat runs the round loop between two combatants. The structure of
// a battle is deterministic; only damage spread, berserk onset, and ally
// assistance draw from the injected RNG.
package combat

import (
	"errors"
	"fmt"

	"github.com/louisbranch/wayfarer/internal/core/dice"
	"github.com/louisbranch/wayfarer/internal/game/domain"
)

// ErrCombatantDown reports a battle requested with a side already at 0 HP.
var ErrCombatantDown = errors.New("combat: combatant is already down")

// Mode selects the battle ruleset.
type Mode int

const (
	// PvE pits a player against a monster: the monster may go berserk, its
	// counters ignore weapon and armor terms, and there is no round cap.
	PvE Mode = iota
	// PvP pits two players: full formulas both ways, ally assistance, and a
	// hard cap of PvPRoundCap rounds.
	PvP
)

// PvPRoundCap bounds player-versus-player battles.
const PvPRoundCap = 10

const (
	berserkHPThreshold = 0.3
	berserkChance      = 0.4
	berserkAttackMult  = 1.5
	lifeStealFraction  = 0.3
	allyAssistChance   = 0.3
)

// Result is the outcome of one resolved battle.
type Result struct {
	Log         []string
	AttackerWon bool
	Rounds      int
	AttackerHP  int
	DefenderHP  int
}

// Resolve simulates a battle to completion and returns the result. Both sides
// must start with positive HP; a battle against a downed combatant is refused
// with ErrCombatantDown. The combatant arguments are mutated freely; callers
// pass transient copies.
//
// Ally slices are only consulted in PvP mode. When the PvP round cap is hit
// with both sides standing, the side with the higher remaining HP percentage
// wins; an exact tie goes to the defender.
func Resolve(rng dice.RNG, mode Mode, attacker, defender domain.Combatant, attackerAllies, defenderAllies []domain.Combatant) (Result, error) {
	if attacker.HP <= 0 || defender.HP <= 0 {
		return Result{}, ErrCombatantDown
	}

	var log []string
	berserkChecked := false
	rounds := 0

	for {
		rounds++

		dmg := strike(rng, attacker, defender)
		if mode == PvP {
			dmg += assist(rng, &log, attackerAllies, defender)
		}
		defender.HP -= dmg
		log = append(log, fmt.Sprintf("Round %d: %s hits %s for %d (%d HP left)",
			rounds, attacker.Name, defender.Name, dmg, max(0, defender.HP)))

		if mode == PvE && !berserkChecked && defender.HP > 0 &&
			defender.HPPercent() < berserkHPThreshold {
			berserkChecked = true
			if dice.Chance(rng, berserkChance) {
				defender.Berserk = true
				defender.Attack = int(float64(defender.Attack) * berserkAttackMult)
				log = append(log, fmt.Sprintf("%s flies into a berserk rage!", defender.Name))
			}
		}

		if defender.Down() {
			log = append(log, fmt.Sprintf("%s is defeated after %d rounds", defender.Name, rounds))
			return Result{Log: log, AttackerWon: true, Rounds: rounds,
				AttackerHP: attacker.HP, DefenderHP: 0}, nil
		}

		var counter int
		if mode == PvE {
			counter = bareStrike(rng, defender.Attack, attacker.Defense)
		} else {
			counter = strike(rng, defender, attacker)
			counter += assist(rng, &log, defenderAllies, attacker)
		}
		attacker.HP -= counter
		log = append(log, fmt.Sprintf("Round %d: %s counters %s for %d (%d HP left)",
			rounds, defender.Name, attacker.Name, counter, max(0, attacker.HP)))

		if defender.Berserk {
			heal := int(float64(counter) * lifeStealFraction)
			if heal > 0 {
				defender.HP += heal
				if defender.HP > defender.StartHP {
					defender.HP = defender.StartHP
				}
				log = append(log, fmt.Sprintf("%s drains %d HP (%d HP)", defender.Name, heal, defender.HP))
			}
		}

		if attacker.Down() {
			log = append(log, fmt.Sprintf("%s is defeated after %d rounds", attacker.Name, rounds))
			return Result{Log: log, AttackerWon: false, Rounds: rounds,
				AttackerHP: 0, DefenderHP: defender.HP}, nil
		}

		if mode == PvP && rounds >= PvPRoundCap {
			attackerWon := attacker.HPPercent() > defender.HPPercent()
			log = append(log, fmt.Sprintf("Battle called after %d rounds", rounds))
			return Result{Log: log, AttackerWon: attackerWon, Rounds: rounds,
				AttackerHP: attacker.HP, DefenderHP: defender.HP}, nil
		}
	}
}

// strike computes one full-formula hit from atk against def.
func strike(rng dice.RNG, atk, def domain.Combatant) int {
	raw := atk.Attack - def.Defense
	if raw < 1 {
		raw = 1
	}
	dmg := float64(raw+atk.WeaponBonus) * (1 - def.ArmorReduction)
	if dmg < 1 {
		dmg = 1
	}
	final := int(dmg * dice.Uniform(rng, 0.8, 1.2))
	if final < 1 {
		final = 1
	}
	return final
}

// bareStrike computes a hit with no weapon or armor terms. Monster counters
// in PvE use this path.
func bareStrike(rng dice.RNG, attack, defense int) int {
	raw := attack - defense
	if raw < 1 {
		raw = 1
	}
	final := int(float64(raw) * dice.Uniform(rng, 0.8, 1.2))
	if final < 1 {
		final = 1
	}
	return final
}

// assist rolls each ally for a 30% chance to pile extra damage onto the
// acting side's hit. Unlike primary strikes, the assist has no damage floor:
// truncation can leave a passing ally contributing nothing.
func assist(rng dice.RNG, log *[]string, allies []domain.Combatant, target domain.Combatant) int {
	total := 0
	for _, ally := range allies {
		if !dice.Chance(rng, allyAssistChance) {
			continue
		}
		raw := ally.Attack - target.Defense
		if raw < 1 {
			raw = 1
		}
		extra := int(float64(raw) * dice.Uniform(rng, 0.4, 0.6))
		total += extra
		*log = append(*log, fmt.Sprintf("%s joins in for %d", ally.Name, extra))
	}
	return total
}
