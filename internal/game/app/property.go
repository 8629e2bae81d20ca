package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/wayfarer/internal/core/board"
	"github.com/louisbranch/wayfarer/internal/core/economy"
	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/storage"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// Holding is one owned property with its current economics.
type Holding struct {
	Tile        domain.Tile
	Level       int
	Rent        int
	UpgradeCost int // 0 at the level cap
}

// MapTile is one board position with its ownership state.
type MapTile struct {
	Tile          domain.Tile
	PurchasePrice int // 0 when the tile cannot be owned
	OwnerNickname string
	Level         int
}

// BuyProperty purchases the tile the player is standing on. Ownership is
// exclusive and permanent.
func (s *Service) BuyProperty(ctx context.Context, playerID string) (domain.Player, domain.Property, error) {
	ctx, span := s.tracer.Start(ctx, "game.BuyProperty")
	defer span.End()

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, domain.Property{}, err
	}

	tile := board.TileAt(player.Position)
	if !tile.Ownable() {
		return domain.Player{}, domain.Property{}, apperrors.WithMetadata(apperrors.CodeTileNotOwnable,
			"this tile cannot be owned", map[string]string{"tile": tile.Name})
	}

	if _, err := s.store.GetProperty(ctx, tile.Position); err == nil {
		return domain.Player{}, domain.Property{}, apperrors.WithMetadata(apperrors.CodePropertyOwned,
			"tile is already owned", map[string]string{"tile": tile.Name})
	} else if !errors.Is(err, storage.ErrNotFound) {
		return domain.Player{}, domain.Property{}, err
	}

	price := economy.PurchasePrice(tile)
	if player.Gold < price {
		return domain.Player{}, domain.Property{}, insufficientFunds(price, player.Gold)
	}

	property := domain.Property{Position: tile.Position, OwnerID: player.ID, Level: 1}
	if err := s.store.CreateProperty(ctx, property); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return domain.Player{}, domain.Property{}, apperrors.WithMetadata(apperrors.CodePropertyOwned,
				"tile is already owned", map[string]string{"tile": tile.Name})
		}
		return domain.Player{}, domain.Property{}, err
	}

	player.Gold -= price
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, domain.Property{}, err
	}
	return player, property, nil
}

// UpgradeProperty raises the level of the property the player stands on, up
// to the hard cap.
func (s *Service) UpgradeProperty(ctx context.Context, playerID string) (domain.Player, domain.Property, error) {
	ctx, span := s.tracer.Start(ctx, "game.UpgradeProperty")
	defer span.End()

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, domain.Property{}, err
	}

	tile := board.TileAt(player.Position)
	property, err := s.store.GetProperty(ctx, tile.Position)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Player{}, domain.Property{}, apperrors.WithMetadata(apperrors.CodePropertyNotOwned,
				"tile has no owner", map[string]string{"tile": tile.Name})
		}
		return domain.Player{}, domain.Property{}, err
	}
	if property.OwnerID != player.ID {
		return domain.Player{}, domain.Property{}, apperrors.WithMetadata(apperrors.CodePropertyNotYours,
			"tile belongs to another player", map[string]string{"tile": tile.Name})
	}
	if property.Level >= domain.MaxPropertyLevel {
		return domain.Player{}, domain.Property{}, apperrors.WithMetadata(apperrors.CodePropertyLevelCap,
			"property is fully upgraded", map[string]string{
				"tile":  tile.Name,
				"level": fmt.Sprintf("%d", property.Level),
			})
	}

	cost := economy.UpgradeCost(tile, property.Level)
	if player.Gold < cost {
		return domain.Player{}, domain.Property{}, insufficientFunds(cost, player.Gold)
	}

	property.Level++
	if err := s.store.SaveProperty(ctx, property); err != nil {
		return domain.Player{}, domain.Property{}, err
	}
	player.Gold -= cost
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, domain.Property{}, err
	}
	return player, property, nil
}

// Properties lists the player's holdings with current rent and upgrade cost.
func (s *Service) Properties(ctx context.Context, playerID string) ([]Holding, error) {
	ctx, span := s.tracer.Start(ctx, "game.Properties")
	defer span.End()

	properties, err := s.store.ListPropertiesByOwner(ctx, playerID)
	if err != nil {
		return nil, err
	}

	holdings := make([]Holding, 0, len(properties))
	for _, p := range properties {
		tile := board.TileAt(p.Position)
		holdings = append(holdings, Holding{
			Tile:        tile,
			Level:       p.Level,
			Rent:        economy.Rent(tile, p.Level),
			UpgradeCost: economy.UpgradeCost(tile, p.Level),
		})
	}
	return holdings, nil
}

// Map returns the full board with ownership annotations.
func (s *Service) Map(ctx context.Context) ([]MapTile, error) {
	ctx, span := s.tracer.Start(ctx, "game.Map")
	defer span.End()

	properties, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	nicknames := make(map[string]string, len(players))
	for _, p := range players {
		nicknames[p.ID] = p.Nickname
	}
	owned := make(map[int]domain.Property, len(properties))
	for _, p := range properties {
		owned[p.Position] = p
	}

	tiles := board.Tiles()
	view := make([]MapTile, 0, len(tiles))
	for _, tile := range tiles {
		mt := MapTile{Tile: tile, PurchasePrice: economy.PurchasePrice(tile)}
		if p, ok := owned[tile.Position]; ok {
			mt.OwnerNickname = nicknames[p.OwnerID]
			mt.Level = p.Level
		}
		view = append(view, mt)
	}
	return view, nil
}
