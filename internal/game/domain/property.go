package domain

// MaxPropertyLevel caps property upgrades.
const MaxPropertyLevel = 3

// Property records ownership of one board tile.
type Property struct {
	Position int
	OwnerID  string
	Level    int
}
