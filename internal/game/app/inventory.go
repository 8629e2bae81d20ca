package app

import (
	"context"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/items"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// ShopStock returns everything the shop sells.
func (s *Service) ShopStock() []domain.Item {
	return s.catalog.ShopStock()
}

// Buy purchases quantity copies of an item from the shop.
func (s *Service) Buy(ctx context.Context, playerID, itemName string, quantity int) (domain.Player, error) {
	ctx, span := s.tracer.Start(ctx, "game.Buy")
	defer span.End()

	if quantity < 1 {
		quantity = 1
	}

	item, ok := s.catalog.Item(itemName)
	if !ok || item.Kind == domain.ItemFish {
		return domain.Player{}, apperrors.WithMetadata(apperrors.CodeItemUnknown,
			"the shop does not sell that", map[string]string{"item": itemName})
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}

	cost := item.Price * quantity
	if player.Gold < cost {
		return domain.Player{}, insufficientFunds(cost, player.Gold)
	}

	player.Gold -= cost
	for i := 0; i < quantity; i++ {
		player.AddItem(item.Name)
	}
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// SaleReport summarizes a sale.
type SaleReport struct {
	Player   domain.Player
	Sold     map[string]int
	GoldPaid int
}

// Sell sells quantity non-equipped copies of an item back to the shop at the
// standard sell rate.
func (s *Service) Sell(ctx context.Context, playerID, itemName string, quantity int) (SaleReport, error) {
	ctx, span := s.tracer.Start(ctx, "game.Sell")
	defer span.End()

	if quantity < 1 {
		quantity = 1
	}

	item, ok := s.catalog.Item(itemName)
	if !ok {
		return SaleReport{}, apperrors.WithMetadata(apperrors.CodeItemUnknown,
			"no such item", map[string]string{"item": itemName})
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return SaleReport{}, err
	}

	sellable := player.CountItem(item.Name) - player.EquippedCount(item.Name)
	if sellable < quantity {
		return SaleReport{}, apperrors.WithMetadata(apperrors.CodeItemNotOwned,
			"not enough unequipped copies to sell", map[string]string{"item": item.Name})
	}

	paid := items.SellPrice(item) * quantity
	for i := 0; i < quantity; i++ {
		player.RemoveItem(item.Name)
	}
	player.Gold += paid
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return SaleReport{}, err
	}
	return SaleReport{
		Player:   player,
		Sold:     map[string]int{item.Name: quantity},
		GoldPaid: paid,
	}, nil
}

// SellAll sells every non-equipped item, optionally restricted to one item
// kind (for example only fish).
func (s *Service) SellAll(ctx context.Context, playerID string, kind domain.ItemKind) (SaleReport, error) {
	ctx, span := s.tracer.Start(ctx, "game.SellAll")
	defer span.End()

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return SaleReport{}, err
	}

	sold := map[string]int{}
	paid := 0
	var kept []string
	equippedSeen := map[string]int{}
	for _, name := range player.Inventory {
		item, ok := s.catalog.Item(name)
		if !ok || (kind != "" && item.Kind != kind) {
			kept = append(kept, name)
			continue
		}
		// Equipped copies stay put.
		if equippedSeen[name] < player.EquippedCount(name) {
			equippedSeen[name]++
			kept = append(kept, name)
			continue
		}
		sold[name]++
		paid += items.SellPrice(item)
	}
	if len(sold) == 0 {
		return SaleReport{}, apperrors.New(apperrors.CodeItemNotOwned, "nothing to sell")
	}

	player.Inventory = kept
	player.Gold += paid
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return SaleReport{}, err
	}
	return SaleReport{Player: player, Sold: sold, GoldPaid: paid}, nil
}

// GiveItem transfers quantity copies of an item to another player.
func (s *Service) GiveItem(ctx context.Context, giverID, recipientNickname, itemName string, quantity int) error {
	ctx, span := s.tracer.Start(ctx, "game.GiveItem")
	defer span.End()

	if quantity < 1 {
		quantity = 1
	}
	if _, ok := s.catalog.Item(itemName); !ok {
		return apperrors.WithMetadata(apperrors.CodeItemUnknown,
			"no such item", map[string]string{"item": itemName})
	}

	recipient, err := s.getPlayerByNickname(ctx, recipientNickname)
	if err != nil {
		return err
	}
	if recipient.ID == giverID {
		return apperrors.New(apperrors.CodeSelfTarget, "cannot give items to yourself")
	}

	unlock := s.locks.lockPair(giverID, recipient.ID)
	defer unlock()

	giver, err := s.getPlayer(ctx, giverID)
	if err != nil {
		return err
	}
	recipient, err = s.getPlayer(ctx, recipient.ID)
	if err != nil {
		return err
	}

	sendable := giver.CountItem(itemName) - giver.EquippedCount(itemName)
	if sendable < quantity {
		return apperrors.WithMetadata(apperrors.CodeItemNotOwned,
			"not enough unequipped copies to give", map[string]string{"item": itemName})
	}

	for i := 0; i < quantity; i++ {
		giver.RemoveItem(itemName)
		recipient.AddItem(itemName)
	}
	if err := s.store.SavePlayer(ctx, giver); err != nil {
		return err
	}
	return s.store.SavePlayer(ctx, recipient)
}

// Equip places an inventory item into its equipment slot, replacing whatever
// occupied it. The replaced item stays in the inventory.
func (s *Service) Equip(ctx context.Context, playerID, itemName string) (domain.Player, error) {
	ctx, span := s.tracer.Start(ctx, "game.Equip")
	defer span.End()

	item, ok := s.catalog.Item(itemName)
	if !ok {
		return domain.Player{}, apperrors.WithMetadata(apperrors.CodeItemUnknown,
			"no such item", map[string]string{"item": itemName})
	}
	if !item.Equipable() {
		return domain.Player{}, apperrors.WithMetadata(apperrors.CodeItemNotEquipable,
			"item cannot be equipped", map[string]string{"item": itemName})
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}
	if !player.HasItem(item.Name) {
		return domain.Player{}, apperrors.WithMetadata(apperrors.CodeItemNotOwned,
			"item is not in the inventory", map[string]string{"item": itemName})
	}

	switch item.Kind {
	case domain.ItemWeapon:
		player.Equipment.Weapon = item.Name
	case domain.ItemArmor:
		player.Equipment.Armor = item.Name
	}
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// Unequip clears the given equipment slot.
func (s *Service) Unequip(ctx context.Context, playerID string, kind domain.ItemKind) (domain.Player, error) {
	ctx, span := s.tracer.Start(ctx, "game.Unequip")
	defer span.End()

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}

	switch kind {
	case domain.ItemWeapon:
		player.Equipment.Weapon = ""
	case domain.ItemArmor:
		player.Equipment.Armor = ""
	default:
		return domain.Player{}, apperrors.New(apperrors.CodeItemNotEquipable, "no such equipment slot")
	}
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// UseItem consumes quantity copies of a consumable, healing up to the
// player's max HP. A short cooldown stops accidental double-use.
func (s *Service) UseItem(ctx context.Context, playerID, itemName string, quantity int) (domain.Player, int, error) {
	ctx, span := s.tracer.Start(ctx, "game.UseItem")
	defer span.End()

	if quantity < 1 {
		quantity = 1
	}

	item, ok := s.catalog.Item(itemName)
	if !ok {
		return domain.Player{}, 0, apperrors.WithMetadata(apperrors.CodeItemUnknown,
			"no such item", map[string]string{"item": itemName})
	}
	if item.Kind != domain.ItemConsumable {
		return domain.Player{}, 0, apperrors.WithMetadata(apperrors.CodeItemNotUsable,
			"item cannot be used", map[string]string{"item": itemName})
	}

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, 0, err
	}
	if err := s.checkCooldown(player.LastActionAt(domain.ActionUseItem), UseItemCooldown); err != nil {
		return domain.Player{}, 0, err
	}
	if player.CountItem(item.Name) < quantity {
		return domain.Player{}, 0, apperrors.WithMetadata(apperrors.CodeItemNotOwned,
			"not enough copies in the inventory", map[string]string{"item": itemName})
	}

	before := player.HP
	player.HP += item.HPBonus * quantity
	if player.HP > player.MaxHP {
		player.HP = player.MaxHP
	}
	for i := 0; i < quantity; i++ {
		player.RemoveItem(item.Name)
	}
	player.RecordAction(domain.ActionUseItem, s.clock())
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, 0, err
	}
	return player, player.HP - before, nil
}
