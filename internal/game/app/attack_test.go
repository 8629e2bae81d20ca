package app

import (
	"context"
	"strings"
	"testing"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

func TestAttackPlayerSelfTarget(t *testing.T) {
	svc, _ := newTestService(t)
	player := register(t, svc, "Ava")

	_, err := svc.AttackPlayer(context.Background(), player.ID, "Ava")
	if got := apperrors.GetCode(err); got != apperrors.CodeBattleSelfTarget {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeBattleSelfTarget)
	}
}

func TestAttackPlayerDownChecks(t *testing.T) {
	svc, store := newTestService(t)
	attacker := register(t, svc, "Ava")
	defender := register(t, svc, "Bram")

	defender.HP = 0
	savePlayer(t, store, defender)
	_, err := svc.AttackPlayer(context.Background(), attacker.ID, "Bram")
	if got := apperrors.GetCode(err); got != apperrors.CodeBattleCombatantDown {
		t.Errorf("code = %s, want %s", got, apperrors.CodeBattleCombatantDown)
	}

	attacker.HP = 0
	savePlayer(t, store, attacker)
	defender.HP = 100
	savePlayer(t, store, defender)
	_, err = svc.AttackPlayer(context.Background(), attacker.ID, "Bram")
	if got := apperrors.GetCode(err); got != apperrors.CodePlayerDown {
		t.Errorf("code = %s, want %s", got, apperrors.CodePlayerDown)
	}
}

func TestAttackPlayerRoundCapTieGoesToDefender(t *testing.T) {
	// Two identical level-1 players with default draws trade 5 damage per
	// round. At the 10-round cap both sit at 50/100 HP; the exact tie goes
	// to the defender, and the shortest penalty fraction floor (20%) applies.
	svc, store := newTestService(t, WithRNG(&seqRNG{}))
	attacker := register(t, svc, "Ava")
	defender := register(t, svc, "Bram")

	report, err := svc.AttackPlayer(context.Background(), attacker.ID, "Bram")
	if err != nil {
		t.Fatalf("AttackPlayer: %v", err)
	}
	if report.AttackerWon {
		t.Fatal("tie should go to the defender")
	}
	if report.Rounds != 10 {
		t.Errorf("rounds = %d, want 10", report.Rounds)
	}
	if report.GoldPenalty != 400 {
		t.Errorf("penalty = %d, want 400", report.GoldPenalty)
	}
	if report.Attacker.Gold != domain.StartingGold-400 {
		t.Errorf("attacker gold = %d, want %d", report.Attacker.Gold, domain.StartingGold-400)
	}
	if report.Defender.Gold != domain.StartingGold+400 {
		t.Errorf("defender gold = %d, want %d", report.Defender.Gold, domain.StartingGold+400)
	}

	// Both records persisted.
	if got := getPlayer(t, store, attacker.ID); got.HP != 50 {
		t.Errorf("stored attacker hp = %d, want 50", got.HP)
	}
	if got := getPlayer(t, store, defender.ID); got.HP != 50 {
		t.Errorf("stored defender hp = %d, want 50", got.HP)
	}
}

func TestAttackPlayerLoserDropsUnequippedItem(t *testing.T) {
	svc, store := newTestService(t, WithRNG(&seqRNG{}))
	attacker := register(t, svc, "Ava")
	defender := register(t, svc, "Bram")

	// The attacker goes down in four rounds; their equipped sword must
	// survive the drop while the loose bread does not.
	attacker.Inventory = []string{"Wooden Sword", "Bread"}
	attacker.Equipment.Weapon = "Wooden Sword"
	savePlayer(t, store, attacker)
	defender.Attack = 30
	savePlayer(t, store, defender)

	report, err := svc.AttackPlayer(context.Background(), attacker.ID, "Bram")
	if err != nil {
		t.Fatalf("AttackPlayer: %v", err)
	}
	if report.AttackerWon {
		t.Fatal("expected the attacker to lose")
	}
	if report.ItemDropped != "Bread" {
		t.Fatalf("dropped = %q, want Bread", report.ItemDropped)
	}

	got := getPlayer(t, store, attacker.ID)
	if got.HasItem("Bread") {
		t.Error("bread should be gone")
	}
	if !got.HasItem("Wooden Sword") {
		t.Error("equipped sword should survive the drop")
	}
	// The item is destroyed, not looted.
	if winner := getPlayer(t, store, defender.ID); winner.HasItem("Bread") {
		t.Error("winner should not receive the dropped item")
	}
}

func TestAttackPlayerSpouseAssists(t *testing.T) {
	// The defender's spouse joins in: chance draw 0.2 passes the 30% check
	// and the 0.5 draw puts the assist multiplier at exactly 0.5.
	rng := &seqRNG{floats: []float64{0.5, 0.5, 0.2, 0.5}}
	svc, store := newTestService(t, WithRNG(rng))
	attacker := register(t, svc, "Ava")
	defender := register(t, svc, "Bram")
	spouse := register(t, svc, "Cora")

	defender.Spouses = []string{"Cora"}
	defender.Attack = 500 // ends the fight on the first counter
	savePlayer(t, store, defender)
	_ = spouse

	report, err := svc.AttackPlayer(context.Background(), attacker.ID, "Bram")
	if err != nil {
		t.Fatalf("AttackPlayer: %v", err)
	}
	if report.AttackerWon {
		t.Fatal("expected the defender to win")
	}
	if report.Rounds != 1 {
		t.Errorf("rounds = %d, want 1", report.Rounds)
	}

	assisted := false
	for _, line := range report.Log {
		if strings.Contains(line, "Cora joins in") {
			assisted = true
		}
	}
	if !assisted {
		t.Errorf("expected an assist line in the log: %v", report.Log)
	}

	// First-round loss: the full 60% penalty.
	if report.GoldPenalty != 1200 {
		t.Errorf("penalty = %d, want 1200", report.GoldPenalty)
	}
}

func TestAttackPlayerCooldownSharedWithAdventure(t *testing.T) {
	clock := newTestClock()
	svc, _ := newTestService(t, WithClock(clock.Now), WithRNG(&seqRNG{}))
	attacker := register(t, svc, "Ava")
	register(t, svc, "Bram")

	if _, err := svc.AttackPlayer(context.Background(), attacker.ID, "Bram"); err != nil {
		t.Fatalf("AttackPlayer: %v", err)
	}

	// The battle timer gates board advances too.
	_, err := svc.GoOut(context.Background(), attacker.ID)
	if got := apperrors.GetCode(err); got != apperrors.CodeCooldownActive {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeCooldownActive)
	}

	clock.Advance(AttackCooldown)
	if _, err := svc.AttackPlayer(context.Background(), attacker.ID, "Bram"); err != nil {
		t.Fatalf("AttackPlayer after cooldown: %v", err)
	}
}
