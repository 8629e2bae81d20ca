// Package memory provides an in-memory game storage implementation, used in
// tests and ephemeral setups.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/storage"
)

// Store keeps game state in process memory.
type Store struct {
	mu         sync.RWMutex
	players    map[string]domain.Player
	properties map[int]domain.Property
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		players:    map[string]domain.Player{},
		properties: map[int]domain.Property{},
	}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// CreatePlayer inserts one player record.
func (s *Store) CreatePlayer(ctx context.Context, player domain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; ok {
		return storage.ErrAlreadyExists
	}
	for _, existing := range s.players {
		if strings.EqualFold(existing.Nickname, player.Nickname) {
			return storage.ErrAlreadyExists
		}
	}
	s.players[player.ID] = clonePlayer(player)
	return nil
}

// GetPlayer returns one player by ID.
func (s *Store) GetPlayer(ctx context.Context, id string) (domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return domain.Player{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return domain.Player{}, storage.ErrNotFound
	}
	return clonePlayer(player), nil
}

// GetPlayerByNickname returns one player by nickname.
func (s *Store) GetPlayerByNickname(ctx context.Context, nickname string) (domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return domain.Player{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, player := range s.players {
		if strings.EqualFold(player.Nickname, nickname) {
			return clonePlayer(player), nil
		}
	}
	return domain.Player{}, storage.ErrNotFound
}

// SavePlayer overwrites the full player record.
func (s *Store) SavePlayer(ctx context.Context, player domain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; !ok {
		return storage.ErrNotFound
	}
	s.players[player.ID] = clonePlayer(player)
	return nil
}

// ListPlayers returns every player ordered by level and experience.
func (s *Store) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]domain.Player, 0, len(s.players))
	for _, player := range s.players {
		players = append(players, clonePlayer(player))
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Level != players[j].Level {
			return players[i].Level > players[j].Level
		}
		if players[i].Exp != players[j].Exp {
			return players[i].Exp > players[j].Exp
		}
		return players[i].Nickname < players[j].Nickname
	})
	return players, nil
}

// CreateProperty inserts one property record.
func (s *Store) CreateProperty(ctx context.Context, property domain.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[property.Position]; ok {
		return storage.ErrAlreadyExists
	}
	s.properties[property.Position] = property
	return nil
}

// GetProperty returns the property at a board position.
func (s *Store) GetProperty(ctx context.Context, position int) (domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return domain.Property{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	property, ok := s.properties[position]
	if !ok {
		return domain.Property{}, storage.ErrNotFound
	}
	return property, nil
}

// SaveProperty overwrites one property record.
func (s *Store) SaveProperty(ctx context.Context, property domain.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[property.Position]; !ok {
		return storage.ErrNotFound
	}
	s.properties[property.Position] = property
	return nil
}

// ListProperties returns every owned property in board order.
func (s *Store) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return s.listProperties(ctx, func(domain.Property) bool { return true })
}

// ListPropertiesByOwner returns the properties held by one player.
func (s *Store) ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	return s.listProperties(ctx, func(p domain.Property) bool { return p.OwnerID == ownerID })
}

func (s *Store) listProperties(ctx context.Context, keep func(domain.Property) bool) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var properties []domain.Property
	for _, property := range s.properties {
		if keep(property) {
			properties = append(properties, property)
		}
	}
	sort.Slice(properties, func(i, j int) bool {
		return properties[i].Position < properties[j].Position
	})
	return properties, nil
}

// clonePlayer deep-copies the record so callers cannot mutate stored state.
func clonePlayer(player domain.Player) domain.Player {
	copied := player
	copied.Inventory = append([]string(nil), player.Inventory...)
	copied.Spouses = append([]string(nil), player.Spouses...)
	if player.RodDurability != nil {
		copied.RodDurability = make(map[string]int, len(player.RodDurability))
		for k, v := range player.RodDurability {
			copied.RodDurability[k] = v
		}
	}
	if player.LastAction != nil {
		copied.LastAction = make(map[domain.Action]int64, len(player.LastAction))
		for k, v := range player.LastAction {
			copied.LastAction[k] = v
		}
	}
	return copied
}

var _ storage.Store = (*Store)(nil)
