package app

import (
	"context"
	"testing"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

func TestBuyAddsToInventory(t *testing.T) {
	svc, _ := newTestService(t)
	player := register(t, svc, "Ava")

	updated, err := svc.Buy(context.Background(), player.ID, "Wooden Sword", 2)
	if err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if updated.Gold != domain.StartingGold-200 {
		t.Errorf("gold = %d, want %d", updated.Gold, domain.StartingGold-200)
	}
	if updated.CountItem("Wooden Sword") != 2 {
		t.Errorf("copies = %d, want 2", updated.CountItem("Wooden Sword"))
	}
}

func TestBuyFailures(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")
	player.Gold = 50
	savePlayer(t, store, player)

	tcs := []struct {
		name string
		item string
		want apperrors.Code
	}{
		{"unknown item", "Excalibur", apperrors.CodeItemUnknown},
		{"fish are not sold", "Minnow", apperrors.CodeItemUnknown},
		{"insufficient funds", "Wooden Sword", apperrors.CodeInsufficientFunds},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Buy(context.Background(), player.ID, tc.item, 1)
			if got := apperrors.GetCode(err); got != tc.want {
				t.Errorf("code = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSellPaysSixtyPercent(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")
	player.Inventory = []string{"Iron Sword"}
	savePlayer(t, store, player)

	report, err := svc.Sell(context.Background(), player.ID, "Iron Sword", 1)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if report.GoldPaid != 180 {
		t.Errorf("paid = %d, want 180", report.GoldPaid)
	}
	if report.Player.HasItem("Iron Sword") {
		t.Error("sold item should be gone")
	}
}

func TestSellExcludesEquippedCopies(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")
	player.Inventory = []string{"Iron Sword"}
	player.Equipment.Weapon = "Iron Sword"
	savePlayer(t, store, player)

	_, err := svc.Sell(context.Background(), player.ID, "Iron Sword", 1)
	if got := apperrors.GetCode(err); got != apperrors.CodeItemNotOwned {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeItemNotOwned)
	}

	// A second loose copy can be sold.
	player.AddItem("Iron Sword")
	savePlayer(t, store, player)
	report, err := svc.Sell(context.Background(), player.ID, "Iron Sword", 1)
	if err != nil {
		t.Fatalf("Sell: %v", err)
	}
	if report.Player.CountItem("Iron Sword") != 1 {
		t.Errorf("copies left = %d, want the equipped one", report.Player.CountItem("Iron Sword"))
	}
}

func TestSellAllByKind(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")
	player.Inventory = []string{"Minnow", "Carp", "Bread"}
	savePlayer(t, store, player)

	report, err := svc.SellAll(context.Background(), player.ID, domain.ItemFish)
	if err != nil {
		t.Fatalf("SellAll: %v", err)
	}
	// Minnow 12 and Carp 24 at 60%: 7 + 14.
	if report.GoldPaid != 21 {
		t.Errorf("paid = %d, want 21", report.GoldPaid)
	}
	if !report.Player.HasItem("Bread") {
		t.Error("bread is not a fish and should remain")
	}
	if report.Player.HasItem("Minnow") || report.Player.HasItem("Carp") {
		t.Error("fish should be gone")
	}
}

func TestGiveItemTransfers(t *testing.T) {
	svc, store := newTestService(t)
	giver := register(t, svc, "Ava")
	recipient := register(t, svc, "Bram")

	giver.Inventory = []string{"Bread", "Bread"}
	savePlayer(t, store, giver)

	if err := svc.GiveItem(context.Background(), giver.ID, "Bram", "Bread", 2); err != nil {
		t.Fatalf("GiveItem: %v", err)
	}

	if got := getPlayer(t, store, giver.ID); got.CountItem("Bread") != 0 {
		t.Errorf("giver copies = %d, want 0", got.CountItem("Bread"))
	}
	if got := getPlayer(t, store, recipient.ID); got.CountItem("Bread") != 2 {
		t.Errorf("recipient copies = %d, want 2", got.CountItem("Bread"))
	}
}

func TestGiveItemFailures(t *testing.T) {
	svc, _ := newTestService(t)
	giver := register(t, svc, "Ava")
	register(t, svc, "Bram")

	err := svc.GiveItem(context.Background(), giver.ID, "Ava", "Bread", 1)
	if got := apperrors.GetCode(err); got != apperrors.CodeSelfTarget {
		t.Errorf("code = %s, want %s", got, apperrors.CodeSelfTarget)
	}

	err = svc.GiveItem(context.Background(), giver.ID, "Bram", "Bread", 1)
	if got := apperrors.GetCode(err); got != apperrors.CodeItemNotOwned {
		t.Errorf("code = %s, want %s", got, apperrors.CodeItemNotOwned)
	}
}

func TestEquipSwapsSlot(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")
	player.Inventory = []string{"Wooden Sword", "Iron Sword", "Cloth Armor"}
	savePlayer(t, store, player)

	updated, err := svc.Equip(context.Background(), player.ID, "Wooden Sword")
	if err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if updated.Equipment.Weapon != "Wooden Sword" {
		t.Fatalf("weapon slot = %s", updated.Equipment.Weapon)
	}

	updated, err = svc.Equip(context.Background(), player.ID, "Iron Sword")
	if err != nil {
		t.Fatalf("Equip swap: %v", err)
	}
	if updated.Equipment.Weapon != "Iron Sword" {
		t.Fatalf("weapon slot = %s, want Iron Sword", updated.Equipment.Weapon)
	}
	// The replaced sword stays in the inventory.
	if !updated.HasItem("Wooden Sword") {
		t.Error("replaced weapon should remain in inventory")
	}

	updated, err = svc.Equip(context.Background(), player.ID, "Cloth Armor")
	if err != nil {
		t.Fatalf("Equip armor: %v", err)
	}
	if updated.Equipment.Armor != "Cloth Armor" {
		t.Errorf("armor slot = %s", updated.Equipment.Armor)
	}
}

func TestEquipFailures(t *testing.T) {
	svc, _ := newTestService(t)
	player := register(t, svc, "Ava")

	tcs := []struct {
		name string
		item string
		want apperrors.Code
	}{
		{"unknown item", "Excalibur", apperrors.CodeItemUnknown},
		{"consumables cannot be equipped", "Bread", apperrors.CodeItemNotEquipable},
		{"item not owned", "Iron Sword", apperrors.CodeItemNotOwned},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Equip(context.Background(), player.ID, tc.item)
			if got := apperrors.GetCode(err); got != tc.want {
				t.Errorf("code = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestUnequipClearsSlot(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")
	player.Inventory = []string{"Wooden Sword"}
	player.Equipment.Weapon = "Wooden Sword"
	savePlayer(t, store, player)

	updated, err := svc.Unequip(context.Background(), player.ID, domain.ItemWeapon)
	if err != nil {
		t.Fatalf("Unequip: %v", err)
	}
	if updated.Equipment.Weapon != "" {
		t.Errorf("weapon slot = %s, want empty", updated.Equipment.Weapon)
	}
	if !updated.HasItem("Wooden Sword") {
		t.Error("unequipped item should remain in inventory")
	}
}

func TestUseItemHealsAndClampsToMax(t *testing.T) {
	clock := newTestClock()
	svc, store := newTestService(t, WithClock(clock.Now))
	player := register(t, svc, "Ava")
	player.HP = 50
	player.Inventory = []string{"Healing Draught", "Healing Draught"}
	savePlayer(t, store, player)

	updated, healed, err := svc.UseItem(context.Background(), player.ID, "Healing Draught", 2)
	if err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	// 50 + 2x50 clamps to the 100 max.
	if updated.HP != 100 || healed != 50 {
		t.Errorf("hp = %d, healed = %d", updated.HP, healed)
	}
	if updated.CountItem("Healing Draught") != 0 {
		t.Errorf("copies left = %d, want 0", updated.CountItem("Healing Draught"))
	}
}

func TestUseItemCooldownAndKind(t *testing.T) {
	clock := newTestClock()
	svc, store := newTestService(t, WithClock(clock.Now))
	player := register(t, svc, "Ava")
	player.HP = 10
	player.Inventory = []string{"Bread", "Bread", "Wooden Sword"}
	savePlayer(t, store, player)

	_, _, err := svc.UseItem(context.Background(), player.ID, "Wooden Sword", 1)
	if got := apperrors.GetCode(err); got != apperrors.CodeItemNotUsable {
		t.Errorf("code = %s, want %s", got, apperrors.CodeItemNotUsable)
	}

	if _, _, err := svc.UseItem(context.Background(), player.ID, "Bread", 1); err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	_, _, err = svc.UseItem(context.Background(), player.ID, "Bread", 1)
	if got := apperrors.GetCode(err); got != apperrors.CodeCooldownActive {
		t.Errorf("code = %s, want %s", got, apperrors.CodeCooldownActive)
	}

	clock.Advance(UseItemCooldown)
	if _, _, err := svc.UseItem(context.Background(), player.ID, "Bread", 1); err != nil {
		t.Fatalf("UseItem after cooldown: %v", err)
	}
}
