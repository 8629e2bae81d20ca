// Package progression awards experience and gold after victories and keeps
// stored player stats consistent with the level-derived formulas.
package progression

import "github.com/louisbranch/wayfarer/internal/game/domain"

// Per-level stat growth.
const (
	LevelUpHPGain      = 50
	LevelUpAttackGain  = 15
	LevelUpDefenseGain = 10
)

// expRewardPerLevel estimates a monster's level from its experience reward.
const expRewardPerLevel = 15

// VictoryReward summarizes what a battle paid out.
type VictoryReward struct {
	ExpGained  int
	GoldGained int
	LeveledUp  bool
	NewLevel   int
}

// ExpMultiplier scales experience by the level gap between the monster and
// the player. Punching up pays 20% more per level; punching down decays 10%
// per level with a 0.2 floor.
func ExpMultiplier(monsterExpReward, playerLevel int) float64 {
	monsterLevel := monsterExpReward / expRewardPerLevel
	diff := monsterLevel - playerLevel
	switch {
	case diff > 0:
		return 1 + 0.2*float64(diff)
	case diff < 0:
		m := 1 + 0.1*float64(diff)
		if m < 0.2 {
			return 0.2
		}
		return m
	}
	return 1.0
}

// ApplyVictory credits the monster's rewards to the player and processes at
// most one level-up. Surplus experience carries over but never cascades into
// a second level within the same victory.
func ApplyVictory(p *domain.Player, m domain.Monster) VictoryReward {
	exp := int(float64(m.ExpReward) * ExpMultiplier(m.ExpReward, p.Level))
	p.Exp += exp
	p.Gold += m.GoldReward

	reward := VictoryReward{ExpGained: exp, GoldGained: m.GoldReward, NewLevel: p.Level}

	threshold := domain.ExpToNextLevel(p.Level)
	if p.Exp >= threshold {
		p.Exp -= threshold
		p.Level++
		p.MaxHP += LevelUpHPGain
		p.Attack += LevelUpAttackGain
		p.Defense += LevelUpDefenseGain
		reward.LeveledUp = true
		reward.NewLevel = p.Level
	}
	return reward
}

// ValidateAndRepair recomputes max HP, attack, and defense from the player's
// level and overwrites stored values that drifted. HP is clamped to the
// corrected maximum. It reports whether anything changed.
func ValidateAndRepair(p *domain.Player) bool {
	if p.Level < 1 {
		p.Level = 1
	}
	changed := false
	if want := domain.ExpectedMaxHP(p.Level); p.MaxHP != want {
		p.MaxHP = want
		changed = true
	}
	if want := domain.ExpectedAttack(p.Level); p.Attack != want {
		p.Attack = want
		changed = true
	}
	if want := domain.ExpectedDefense(p.Level); p.Defense != want {
		p.Defense = want
		changed = true
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
		changed = true
	}
	if p.HP < 0 {
		p.HP = 0
		changed = true
	}
	return changed
}
