// Package storage defines persistence contracts for game state.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/wayfarer/internal/game/domain"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// PlayerStore persists player records. SavePlayer overwrites the full record;
// callers are expected to have read a consistent snapshot first.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, player domain.Player) error
	GetPlayer(ctx context.Context, id string) (domain.Player, error)
	GetPlayerByNickname(ctx context.Context, nickname string) (domain.Player, error)
	SavePlayer(ctx context.Context, player domain.Player) error
	ListPlayers(ctx context.Context) ([]domain.Player, error)
}

// PropertyStore persists board property ownership.
type PropertyStore interface {
	CreateProperty(ctx context.Context, property domain.Property) error
	GetProperty(ctx context.Context, position int) (domain.Property, error)
	SaveProperty(ctx context.Context, property domain.Property) error
	ListProperties(ctx context.Context) ([]domain.Property, error)
	ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
}

// Store bundles the persistence contracts behind one handle.
type Store interface {
	PlayerStore
	PropertyStore
	Close() error
}
