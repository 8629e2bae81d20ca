// Package stats resolves effective combat attributes from persistent records.
// It folds equipment bonuses into a transient combatant and computes armor
// damage reduction.
package stats

import "github.com/louisbranch/wayfarer/internal/game/domain"

// MaxArmorReduction caps how much of incoming damage armor can absorb.
const MaxArmorReduction = 0.8

// Catalog resolves item names to their immutable definitions.
type Catalog interface {
	Item(name string) (domain.Item, bool)
}

// ArmorReduction converts equipped armor defense into a damage reduction
// fraction. Each point absorbs 1% of incoming damage, capped at 80%. The rate
// and cap are fixed design constants; combat parity depends on them.
func ArmorReduction(armorDefense int) float64 {
	r := float64(armorDefense) * 0.01
	if r > MaxArmorReduction {
		return MaxArmorReduction
	}
	if r < 0 {
		return 0
	}
	return r
}

// EquipmentBonuses sums the attack and defense bonuses of the player's
// equipped items. Names missing from the catalog contribute nothing.
func EquipmentBonuses(p domain.Player, catalog Catalog) (attack, defense int) {
	for _, name := range []string{p.Equipment.Weapon, p.Equipment.Armor} {
		if name == "" {
			continue
		}
		item, ok := catalog.Item(name)
		if !ok {
			continue
		}
		attack += item.AttackBonus
		defense += item.DefenseBonus
	}
	return attack, defense
}

// WeaponBonus returns the flat attack bonus of the equipped weapon, zero when
// no weapon is equipped or the name is unknown to the catalog.
func WeaponBonus(p domain.Player, catalog Catalog) int {
	if p.Equipment.Weapon == "" {
		return 0
	}
	item, ok := catalog.Item(p.Equipment.Weapon)
	if !ok {
		return 0
	}
	return item.AttackBonus
}

// ArmorDefense returns the defense bonus of the equipped armor, zero when no
// armor is equipped or the name is unknown to the catalog.
func ArmorDefense(p domain.Player, catalog Catalog) int {
	if p.Equipment.Armor == "" {
		return 0
	}
	item, ok := catalog.Item(p.Equipment.Armor)
	if !ok {
		return 0
	}
	return item.DefenseBonus
}

// PlayerCombatant builds the battle view of a player. Only the equipped armor
// feeds the damage reduction; the weapon bonus stays a separate flat term so
// counter strikes can omit it.
func PlayerCombatant(p domain.Player, catalog Catalog) domain.Combatant {
	_, defBonus := EquipmentBonuses(p, catalog)
	return domain.Combatant{
		Name:           p.Nickname,
		HP:             p.HP,
		StartHP:        p.HP,
		Attack:         p.Attack,
		Defense:        p.Defense + defBonus,
		WeaponBonus:    WeaponBonus(p, catalog),
		ArmorReduction: ArmorReduction(ArmorDefense(p, catalog)),
	}
}

// MonsterCombatant builds the battle view of a monster. Monsters wear no
// armor, so their reduction is always zero regardless of defense.
func MonsterCombatant(m domain.Monster) domain.Combatant {
	return domain.Combatant{
		Name:           m.Name,
		HP:             m.HP,
		StartHP:        m.HP,
		Attack:         m.Attack,
		Defense:        m.Defense,
		ArmorReduction: 0,
	}
}
