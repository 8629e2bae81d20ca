package domain

import "time"

// Action identifies a cooldown-gated player action.
type Action string

const (
	// ActionBattle covers both board advances and PvP attacks; the two share
	// one timer so a player cannot alternate them to dodge cooldowns.
	ActionBattle Action = "battle"
	// ActionFishing gates fishing attempts.
	ActionFishing Action = "fishing"
	// ActionUseItem gates consumable usage.
	ActionUseItem Action = "use_item"
	// ActionCheckIn records the last daily check-in.
	ActionCheckIn Action = "check_in"
)

// Starting attributes for a freshly registered player.
const (
	StartingGold    = 2000
	StartingHP      = 100
	StartingAttack  = 10
	StartingDefense = 5
)

// EquipmentSlots holds the named equipment slots of a player.
type EquipmentSlots struct {
	Weapon string
	Armor  string
}

// Player is the persistent game record for one participant.
//
// MaxHP, Attack, and Defense are derived from Level; the stored values are
// repaired against the level formulas whenever they drift (see the
// progression package).
type Player struct {
	ID              string
	Nickname        string
	Gold            int
	Level           int
	HP              int
	MaxHP           int
	Attack          int
	Defense         int
	Exp             int
	Inventory       []string
	Equipment       EquipmentSlots
	RodDurability   map[string]int
	Position        int
	Spouses         []string
	PendingProposal string
	LastAction      map[Action]int64
}

// NewPlayer creates a freshly registered player at the board start.
func NewPlayer(id, nickname string) Player {
	return Player{
		ID:            id,
		Nickname:      nickname,
		Gold:          StartingGold,
		Level:         1,
		HP:            StartingHP,
		MaxHP:         StartingHP,
		Attack:        StartingAttack,
		Defense:       StartingDefense,
		Inventory:     []string{},
		RodDurability: map[string]int{},
		Spouses:       []string{},
		LastAction:    map[Action]int64{},
	}
}

// ExpectedMaxHP returns the max HP derived from a level.
func ExpectedMaxHP(level int) int {
	return 100 + 50*(level-1)
}

// ExpectedAttack returns the base attack derived from a level.
func ExpectedAttack(level int) int {
	return 10 + 15*(level-1)
}

// ExpectedDefense returns the base defense derived from a level.
func ExpectedDefense(level int) int {
	return 5 + 10*(level-1)
}

// ExpToNextLevel returns the experience threshold for the given level.
func ExpToNextLevel(level int) int {
	return int(100 * (1 + 0.5*float64(level-1)))
}

// HasItem reports whether the inventory holds at least one copy of item.
func (p Player) HasItem(item string) bool {
	for _, name := range p.Inventory {
		if name == item {
			return true
		}
	}
	return false
}

// CountItem returns the number of copies of item in the inventory.
func (p Player) CountItem(item string) int {
	count := 0
	for _, name := range p.Inventory {
		if name == item {
			count++
		}
	}
	return count
}

// RemoveItem removes one copy of item from the inventory.
// It reports whether a copy was present.
func (p *Player) RemoveItem(item string) bool {
	for i, name := range p.Inventory {
		if name == item {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// AddItem appends one copy of item to the inventory.
func (p *Player) AddItem(item string) {
	p.Inventory = append(p.Inventory, item)
}

// EquippedCount returns how many copies of item are currently equipped.
// A name can occupy at most one slot per kind, so the result is 0, 1, or 2.
func (p Player) EquippedCount(item string) int {
	count := 0
	if p.Equipment.Weapon == item {
		count++
	}
	if p.Equipment.Armor == item {
		count++
	}
	return count
}

// MarriedTo reports whether nickname is already a spouse.
func (p Player) MarriedTo(nickname string) bool {
	for _, s := range p.Spouses {
		if s == nickname {
			return true
		}
	}
	return false
}

// LastActionAt returns the recorded time of the given action, zero if never.
func (p Player) LastActionAt(action Action) time.Time {
	ts, ok := p.LastAction[action]
	if !ok || ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// RecordAction stores the time of the given action.
func (p *Player) RecordAction(action Action, at time.Time) {
	if p.LastAction == nil {
		p.LastAction = map[Action]int64{}
	}
	p.LastAction[action] = at.Unix()
}
