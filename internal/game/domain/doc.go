// Package domain defines the entities of the Wayfarer game: players, items,
// monsters, board tiles, properties, and the transient combatants built for a
// single battle.
package domain
