package domain

// Combatant is the transient battle view of a player or monster. Equipment
// bonuses are already folded into Attack; ArmorReduction is precomputed so the
// combat loop never needs the source entity.
type Combatant struct {
	Name           string
	HP             int
	StartHP        int
	Attack         int
	Defense        int
	WeaponBonus    int
	ArmorReduction float64
	Berserk        bool
}

// Down reports whether the combatant has been reduced to zero HP.
func (c Combatant) Down() bool {
	return c.HP <= 0
}

// HPPercent returns remaining HP as a fraction of starting HP.
func (c Combatant) HPPercent() float64 {
	if c.StartHP <= 0 {
		return 0
	}
	return float64(c.HP) / float64(c.StartHP)
}
