package app

import (
	"context"
	"testing"
	"time"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

func TestRegisterStartingState(t *testing.T) {
	svc, _ := newTestService(t)

	player := register(t, svc, "Ava")

	if player.Gold != domain.StartingGold {
		t.Errorf("gold = %d, want %d", player.Gold, domain.StartingGold)
	}
	if player.Level != 1 || player.HP != domain.StartingHP || player.MaxHP != domain.StartingHP {
		t.Errorf("unexpected starting stats: %+v", player)
	}
	if player.Position != 0 {
		t.Errorf("position = %d, want 0", player.Position)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "Ava")

	tcs := []struct {
		name     string
		nickname string
		want     apperrors.Code
	}{
		{"empty nickname", "   ", apperrors.CodePlayerEmptyNickname},
		{"duplicate nickname", "Ava", apperrors.CodePlayerAlreadyRegistered},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.nickname)
			if got := apperrors.GetCode(err); got != tc.want {
				t.Errorf("code = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestStatusRepairsDriftedStats(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")

	player.Attack = 999
	player.HP = 5000
	savePlayer(t, store, player)

	report, err := svc.Status(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !report.Repaired {
		t.Error("expected drifted stats to be repaired")
	}
	if report.Player.Attack != domain.StartingAttack {
		t.Errorf("attack = %d, want %d", report.Player.Attack, domain.StartingAttack)
	}
	if report.Player.HP != domain.StartingHP {
		t.Errorf("hp = %d, want %d", report.Player.HP, domain.StartingHP)
	}

	stored := getPlayer(t, store, player.ID)
	if stored.Attack != domain.StartingAttack {
		t.Errorf("stored attack = %d, repair was not persisted", stored.Attack)
	}
}

func TestStatusIncludesEquipmentTotals(t *testing.T) {
	svc, store := newTestService(t)
	player := register(t, svc, "Ava")

	player.Inventory = []string{"Iron Sword", "Iron Armor"}
	player.Equipment = domain.EquipmentSlots{Weapon: "Iron Sword", Armor: "Iron Armor"}
	savePlayer(t, store, player)

	report, err := svc.Status(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if report.TotalAttack != domain.StartingAttack+10 {
		t.Errorf("total attack = %d, want %d", report.TotalAttack, domain.StartingAttack+10)
	}
	if report.TotalDefense != domain.StartingDefense+15 {
		t.Errorf("total defense = %d, want %d", report.TotalDefense, domain.StartingDefense+15)
	}
	if report.BonusHP != 50 {
		t.Errorf("bonus hp = %d, want 50", report.BonusHP)
	}
}

func TestDailyCheckInOncePerCalendarDay(t *testing.T) {
	clock := newTestClock()
	svc, _ := newTestService(t, WithClock(clock.Now))
	player := register(t, svc, "Ava")

	updated, err := svc.DailyCheckIn(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("DailyCheckIn: %v", err)
	}
	if updated.Gold != domain.StartingGold+CheckInGold {
		t.Errorf("gold = %d, want %d", updated.Gold, domain.StartingGold+CheckInGold)
	}
	if updated.Exp != CheckInExp {
		t.Errorf("exp = %d, want %d", updated.Exp, CheckInExp)
	}

	// Later the same day is refused; midnight is the boundary, not 24 hours.
	clock.Advance(6 * time.Hour)
	_, err = svc.DailyCheckIn(context.Background(), player.ID)
	if got := apperrors.GetCode(err); got != apperrors.CodeCheckInAlreadyDone {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeCheckInAlreadyDone)
	}

	clock.Advance(12 * time.Hour)
	if _, err := svc.DailyCheckIn(context.Background(), player.ID); err != nil {
		t.Fatalf("DailyCheckIn next day: %v", err)
	}
}

func TestLeaderboardSortsAndRanks(t *testing.T) {
	svc, store := newTestService(t)
	ava := register(t, svc, "Ava")
	bram := register(t, svc, "Bram")
	cora := register(t, svc, "Cora")

	ava.Level = 3
	bram.Gold = 9000
	cora.Level = 2
	savePlayer(t, store, ava)
	savePlayer(t, store, bram)
	savePlayer(t, store, cora)

	byLevel, err := svc.Leaderboard(context.Background(), cora.ID, ByLevel, 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if byLevel.Top[0].Nickname != "Ava" || byLevel.Rank != 2 {
		t.Errorf("by level: top = %s, rank = %d", byLevel.Top[0].Nickname, byLevel.Rank)
	}

	byGold, err := svc.Leaderboard(context.Background(), bram.ID, ByGold, 2)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if byGold.Top[0].Nickname != "Bram" || byGold.Rank != 1 {
		t.Errorf("by gold: top = %s, rank = %d", byGold.Top[0].Nickname, byGold.Rank)
	}
	if len(byGold.Top) != 2 {
		t.Errorf("limit not applied: got %d entries", len(byGold.Top))
	}
}
