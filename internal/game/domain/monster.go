package domain

// Monster is a synthesized battle opponent. Monsters are never persisted;
// they are scaled from a bestiary entry at encounter time.
type Monster struct {
	Name       string
	HP         int
	Attack     int
	Defense    int
	ExpReward  int
	GoldReward int
}
