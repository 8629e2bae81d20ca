package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/louisbranch/wayfarer/internal/core/progression"
	"github.com/louisbranch/wayfarer/internal/core/stats"
	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/storage"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
)

// Daily check-in rewards.
const (
	CheckInGold = 50
	CheckInExp  = 10
)

// Register creates a new player with starting gold and baseline stats.
func (s *Service) Register(ctx context.Context, nickname string) (domain.Player, error) {
	ctx, span := s.tracer.Start(ctx, "game.Register")
	defer span.End()

	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return domain.Player{}, apperrors.New(apperrors.CodePlayerEmptyNickname, "nickname is required")
	}

	player := domain.NewPlayer(s.newID(), nickname)
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return domain.Player{}, apperrors.WithMetadata(apperrors.CodePlayerAlreadyRegistered,
				"nickname is taken", map[string]string{"nickname": nickname})
		}
		return domain.Player{}, err
	}
	return player, nil
}

// StatusReport is a player's current sheet, with equipment bonuses folded in.
type StatusReport struct {
	Player       domain.Player
	TotalAttack  int
	TotalDefense int
	BonusHP      int
	ExpToLevel   int
	Repaired     bool
}

// Status returns the player's sheet. Stored stats are validated against the
// level formulas and silently repaired before reporting.
func (s *Service) Status(ctx context.Context, playerID string) (StatusReport, error) {
	ctx, span := s.tracer.Start(ctx, "game.Status")
	defer span.End()

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return StatusReport{}, err
	}

	repaired := progression.ValidateAndRepair(&player)
	if repaired {
		if err := s.store.SavePlayer(ctx, player); err != nil {
			return StatusReport{}, err
		}
	}

	atkBonus, defBonus := stats.EquipmentBonuses(player, s.catalog)
	bonusHP := 0
	if armor, ok := s.catalog.Item(player.Equipment.Armor); ok {
		bonusHP = armor.HPBonus
	}
	return StatusReport{
		Player:       player,
		TotalAttack:  player.Attack + atkBonus,
		TotalDefense: player.Defense + defBonus,
		BonusHP:      bonusHP,
		ExpToLevel:   domain.ExpToNextLevel(player.Level),
		Repaired:     repaired,
	}, nil
}

// DailyCheckIn grants the daily gold and experience stipend once per
// calendar day.
func (s *Service) DailyCheckIn(ctx context.Context, playerID string) (domain.Player, error) {
	ctx, span := s.tracer.Start(ctx, "game.DailyCheckIn")
	defer span.End()

	unlock := s.locks.lock(playerID)
	defer unlock()

	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return domain.Player{}, err
	}

	now := s.clock()
	if last := player.LastActionAt(domain.ActionCheckIn); !last.IsZero() {
		y1, m1, d1 := last.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return domain.Player{}, apperrors.New(apperrors.CodeCheckInAlreadyDone, "already checked in today")
		}
	}

	player.Gold += CheckInGold
	player.Exp += CheckInExp
	player.RecordAction(domain.ActionCheckIn, now)
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

// LeaderboardSort selects the leaderboard ordering.
type LeaderboardSort int

const (
	// ByLevel ranks by level, then experience.
	ByLevel LeaderboardSort = iota
	// ByGold ranks by gold.
	ByGold
)

// Ranking is a leaderboard page plus the requesting player's own rank.
type Ranking struct {
	Top  []domain.Player
	Rank int // 1-based, 0 when the player is not registered
}

// Leaderboard returns the top players and where the requesting player falls.
// The store already orders by level and experience; gold ordering is applied
// here.
func (s *Service) Leaderboard(ctx context.Context, playerID string, by LeaderboardSort, limit int) (Ranking, error) {
	ctx, span := s.tracer.Start(ctx, "game.Leaderboard")
	defer span.End()

	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return Ranking{}, err
	}
	if by == ByGold {
		sort.SliceStable(players, func(i, j int) bool {
			return players[i].Gold > players[j].Gold
		})
	}

	rank := 0
	for i, p := range players {
		if p.ID == playerID {
			rank = i + 1
			break
		}
	}

	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return Ranking{Top: players, Rank: rank}, nil
}

// PlayerByNickname returns the player registered under the nickname.
func (s *Service) PlayerByNickname(ctx context.Context, nickname string) (domain.Player, error) {
	ctx, span := s.tracer.Start(ctx, "game.PlayerByNickname")
	defer span.End()

	return s.getPlayerByNickname(ctx, nickname)
}

// getPlayer loads a player by ID, mapping a missing record to a domain error.
func (s *Service) getPlayer(ctx context.Context, playerID string) (domain.Player, error) {
	player, err := s.store.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Player{}, apperrors.New(apperrors.CodeNotFound, "player is not registered")
		}
		return domain.Player{}, err
	}
	return player, nil
}

// getPlayerByNickname loads a player by nickname.
func (s *Service) getPlayerByNickname(ctx context.Context, nickname string) (domain.Player, error) {
	player, err := s.store.GetPlayerByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Player{}, apperrors.WithMetadata(apperrors.CodeNotFound,
				"no such player", map[string]string{"nickname": nickname})
		}
		return domain.Player{}, err
	}
	return player, nil
}
