// Package events holds the data-driven content tables: opportunity events
// drawn on chance tiles and the bestiary that wilderness encounters spawn
// from. Both ship with built-in defaults and can be overridden by Lua
// scripts.
package events

import (
	"fmt"

	"github.com/louisbranch/wayfarer/internal/core/dice"
	"github.com/louisbranch/wayfarer/internal/game/domain"
)

// Event is one entry of the opportunity table.
type Event struct {
	ID          string
	Name        string
	Description string
	GoldDelta   int
}

// Table groups opportunity events by category. A draw picks the category
// first, 50/50, then an entry uniformly within it.
type Table struct {
	Good []Event
	Bad  []Event
}

// Draw picks one event from the table.
func (t Table) Draw(rng dice.RNG) Event {
	pool := t.Good
	if !dice.Chance(rng, 0.5) {
		pool = t.Bad
	}
	if len(pool) == 0 {
		return Event{}
	}
	return pool[rng.Intn(len(pool))]
}

// Validate checks that both categories have at least one entry.
func (t Table) Validate() error {
	if len(t.Good) == 0 || len(t.Bad) == 0 {
		return fmt.Errorf("event table needs both good and bad entries (%d good, %d bad)",
			len(t.Good), len(t.Bad))
	}
	return nil
}

// DefaultTable returns the built-in opportunity events.
func DefaultTable() Table {
	return Table{
		Good: []Event{
			{ID: "treasure", Name: "Buried Treasure", Description: "You dig up an old chest by the roadside", GoldDelta: 500},
			{ID: "lottery", Name: "Lucky Draw", Description: "Your raffle ticket wins the village lottery", GoldDelta: 300},
		},
		Bad: []Event{
			{ID: "tax", Name: "Tax Collector", Description: "A collector demands road taxes", GoldDelta: -200},
			{ID: "pickpocket", Name: "Pickpocket", Description: "A cutpurse makes off with your coin", GoldDelta: -100},
		},
	}
}

// MonsterSpec is a baseline bestiary entry before level scaling.
type MonsterSpec struct {
	Name       string
	HP         int
	Attack     int
	Defense    int
	ExpReward  int
	GoldReward int
}

// Bestiary is the pool of monsters wilderness tiles spawn from.
type Bestiary struct {
	Specs []MonsterSpec
}

// Validate checks that the bestiary is usable.
func (b Bestiary) Validate() error {
	if len(b.Specs) == 0 {
		return fmt.Errorf("bestiary is empty")
	}
	for _, s := range b.Specs {
		if s.Name == "" || s.HP <= 0 {
			return fmt.Errorf("bestiary entry %q needs a name and positive hp", s.Name)
		}
	}
	return nil
}

const (
	mutationChance      = 0.15
	mutationStatMult    = 1.5
	mutationAttackMult  = 1.3
	mutatedNamePrefix   = "Mutated "
	levelScalingPerStep = 0.2
)

// Spawn picks a spec uniformly, scales it to the player's level, and rolls
// the 15% mutation. Mutants hit harder and pay out more.
func (b Bestiary) Spawn(rng dice.RNG, playerLevel int) domain.Monster {
	spec := b.Specs[rng.Intn(len(b.Specs))]

	factor := 1 + levelScalingPerStep*float64(playerLevel-1)
	m := domain.Monster{
		Name:       spec.Name,
		HP:         int(float64(spec.HP) * factor),
		Attack:     int(float64(spec.Attack) * factor),
		Defense:    int(float64(spec.Defense) * factor),
		ExpReward:  int(float64(spec.ExpReward) * factor),
		GoldReward: int(float64(spec.GoldReward) * factor),
	}

	if dice.Chance(rng, mutationChance) {
		m.Name = mutatedNamePrefix + m.Name
		m.HP = int(float64(m.HP) * mutationStatMult)
		m.Attack = int(float64(m.Attack) * mutationAttackMult)
		m.Defense = int(float64(m.Defense) * mutationStatMult)
		m.ExpReward = int(float64(m.ExpReward) * mutationStatMult)
		m.GoldReward = int(float64(m.GoldReward) * mutationStatMult)
	}
	return m
}

// DefaultBestiary returns the built-in monster pool. The slime is the
// baseline encounter the combat tuning is balanced around.
func DefaultBestiary() Bestiary {
	return Bestiary{Specs: []MonsterSpec{
		{Name: "Forest Slime", HP: 60, Attack: 10, Defense: 6, ExpReward: 20, GoldReward: 30},
		{Name: "Gray Wolf", HP: 70, Attack: 12, Defense: 5, ExpReward: 24, GoldReward: 35},
		{Name: "Marsh Viper", HP: 55, Attack: 15, Defense: 4, ExpReward: 26, GoldReward: 40},
		{Name: "Hobgoblin", HP: 80, Attack: 14, Defense: 8, ExpReward: 30, GoldReward: 45},
	}}
}
