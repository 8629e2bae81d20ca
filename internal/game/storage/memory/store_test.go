package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/storage"
)

func TestCreatePlayerRejectsDuplicates(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.CreatePlayer(ctx, domain.NewPlayer("id-1", "Rowan")); err != nil {
		t.Fatalf("create player: %v", err)
	}
	if err := store.CreatePlayer(ctx, domain.NewPlayer("id-1", "Other")); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate id err = %v", err)
	}
	if err := store.CreatePlayer(ctx, domain.NewPlayer("id-2", "rowan")); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate nickname err = %v", err)
	}
}

func TestGetPlayerReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()

	player := domain.NewPlayer("id-1", "Rowan")
	player.AddItem("Bread")
	if err := store.CreatePlayer(ctx, player); err != nil {
		t.Fatalf("create player: %v", err)
	}

	got, err := store.GetPlayer(ctx, "id-1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	got.Inventory[0] = "tampered"
	got.RodDurability["Wooden Rod"] = 1

	again, err := store.GetPlayer(ctx, "id-1")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if again.Inventory[0] != "Bread" {
		t.Error("stored inventory was mutated through a returned copy")
	}
	if len(again.RodDurability) != 0 {
		t.Error("stored rod durability was mutated through a returned copy")
	}
}

func TestSavePlayerMissing(t *testing.T) {
	store := New()
	err := store.SavePlayer(context.Background(), domain.NewPlayer("ghost", "Ghost"))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListPlayersOrdering(t *testing.T) {
	store := New()
	ctx := context.Background()

	a := domain.NewPlayer("id-1", "Rowan")
	b := domain.NewPlayer("id-2", "Mira")
	b.Level = 4
	c := domain.NewPlayer("id-3", "Wren")
	c.Level = 4
	c.Exp = 10
	for _, p := range []domain.Player{a, b, c} {
		if err := store.CreatePlayer(ctx, p); err != nil {
			t.Fatalf("create player: %v", err)
		}
	}

	players, err := store.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if players[0].Nickname != "Wren" || players[1].Nickname != "Mira" || players[2].Nickname != "Rowan" {
		t.Errorf("order = %s, %s, %s", players[0].Nickname, players[1].Nickname, players[2].Nickname)
	}
}

func TestPropertyLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()

	if err := store.CreateProperty(ctx, domain.Property{Position: 12, OwnerID: "id-1", Level: 1}); err != nil {
		t.Fatalf("create property: %v", err)
	}
	if err := store.CreateProperty(ctx, domain.Property{Position: 12, OwnerID: "id-2", Level: 1}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Errorf("duplicate position err = %v", err)
	}

	property, err := store.GetProperty(ctx, 12)
	if err != nil {
		t.Fatalf("get property: %v", err)
	}
	property.Level = 2
	if err := store.SaveProperty(ctx, property); err != nil {
		t.Fatalf("save property: %v", err)
	}

	mine, err := store.ListPropertiesByOwner(ctx, "id-1")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(mine) != 1 || mine[0].Level != 2 {
		t.Errorf("mine = %+v", mine)
	}

	if _, err := store.GetProperty(ctx, 40); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing property err = %v", err)
	}
}
