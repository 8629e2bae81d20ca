// Package sqlite provides a SQLite-backed game storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/wayfarer/internal/platform/storage/sqlitemigrate"

	"github.com/louisbranch/wayfarer/internal/game/domain"
	"github.com/louisbranch/wayfarer/internal/game/storage"
	"github.com/louisbranch/wayfarer/internal/game/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists game state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite game store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreatePlayer inserts one player record.
func (s *Store) CreatePlayer(ctx context.Context, player domain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(player.ID)
	nickname := strings.TrimSpace(player.Nickname)
	if id == "" {
		return fmt.Errorf("player id is required")
	}
	if nickname == "" {
		return fmt.Errorf("nickname is required")
	}

	inventory, rodDurability, spouses, lastAction, err := encodePlayerBlobs(player)
	if err != nil {
		return fmt.Errorf("create player: %w", err)
	}

	now := toMillis(time.Now())
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO players (
		   id, nickname, gold, level, hp, max_hp, attack, defense, exp,
		   inventory, equipped_weapon, equipped_armor, rod_durability,
		   position, spouses, pending_proposal, last_action,
		   created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		nickname,
		player.Gold,
		player.Level,
		player.HP,
		player.MaxHP,
		player.Attack,
		player.Defense,
		player.Exp,
		inventory,
		player.Equipment.Weapon,
		player.Equipment.Armor,
		rodDurability,
		player.Position,
		spouses,
		player.PendingProposal,
		lastAction,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

const playerColumns = `id, nickname, gold, level, hp, max_hp, attack, defense, exp,
       inventory, equipped_weapon, equipped_armor, rod_durability,
       position, spouses, pending_proposal, last_action`

// GetPlayer returns one player by ID.
func (s *Store) GetPlayer(ctx context.Context, id string) (domain.Player, error) {
	return s.getPlayerBy(ctx, "id", strings.TrimSpace(id))
}

// GetPlayerByNickname returns one player by nickname.
func (s *Store) GetPlayerByNickname(ctx context.Context, nickname string) (domain.Player, error) {
	return s.getPlayerBy(ctx, "nickname", strings.TrimSpace(nickname))
}

func (s *Store) getPlayerBy(ctx context.Context, column, value string) (domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return domain.Player{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Player{}, fmt.Errorf("storage is not configured")
	}
	if value == "" {
		return domain.Player{}, fmt.Errorf("%s is required", column)
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		fmt.Sprintf(`SELECT %s FROM players WHERE %s = ?`, playerColumns, column),
		value,
	)
	player, err := scanPlayer(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Player{}, storage.ErrNotFound
		}
		return domain.Player{}, fmt.Errorf("get player: %w", err)
	}
	return player, nil
}

// SavePlayer overwrites the full player record.
func (s *Store) SavePlayer(ctx context.Context, player domain.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(player.ID)
	if id == "" {
		return fmt.Errorf("player id is required")
	}

	inventory, rodDurability, spouses, lastAction, err := encodePlayerBlobs(player)
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE players SET
		   nickname = ?, gold = ?, level = ?, hp = ?, max_hp = ?,
		   attack = ?, defense = ?, exp = ?, inventory = ?,
		   equipped_weapon = ?, equipped_armor = ?, rod_durability = ?,
		   position = ?, spouses = ?, pending_proposal = ?, last_action = ?,
		   updated_at = ?
		 WHERE id = ?`,
		player.Nickname,
		player.Gold,
		player.Level,
		player.HP,
		player.MaxHP,
		player.Attack,
		player.Defense,
		player.Exp,
		inventory,
		player.Equipment.Weapon,
		player.Equipment.Armor,
		rodDurability,
		player.Position,
		spouses,
		player.PendingProposal,
		lastAction,
		toMillis(time.Now()),
		id,
	)
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListPlayers returns every player ordered by level and experience.
func (s *Store) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		fmt.Sprintf(`SELECT %s FROM players ORDER BY level DESC, exp DESC, nickname ASC`, playerColumns),
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		player, err := scanPlayer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// CreateProperty inserts one property record.
func (s *Store) CreateProperty(ctx context.Context, property domain.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(property.OwnerID) == "" {
		return fmt.Errorf("owner id is required")
	}

	now := toMillis(time.Now())
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO properties (position, owner_id, level, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		property.Position,
		property.OwnerID,
		property.Level,
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

// GetProperty returns the property at a board position.
func (s *Store) GetProperty(ctx context.Context, position int) (domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return domain.Property{}, err
	}
	if s == nil || s.sqlDB == nil {
		return domain.Property{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT position, owner_id, level FROM properties WHERE position = ?`,
		position,
	)
	var property domain.Property
	if err := row.Scan(&property.Position, &property.OwnerID, &property.Level); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Property{}, storage.ErrNotFound
		}
		return domain.Property{}, fmt.Errorf("get property: %w", err)
	}
	return property, nil
}

// SaveProperty overwrites one property record.
func (s *Store) SaveProperty(ctx context.Context, property domain.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE properties SET owner_id = ?, level = ?, updated_at = ? WHERE position = ?`,
		property.OwnerID,
		property.Level,
		toMillis(time.Now()),
		property.Position,
	)
	if err != nil {
		return fmt.Errorf("save property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save property: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListProperties returns every owned property in board order.
func (s *Store) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return s.listProperties(ctx, "", "")
}

// ListPropertiesByOwner returns the properties held by one player.
func (s *Store) ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	return s.listProperties(ctx, "owner_id", ownerID)
}

func (s *Store) listProperties(ctx context.Context, column, value string) ([]domain.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	query := `SELECT position, owner_id, level FROM properties ORDER BY position ASC`
	args := []any{}
	if column != "" {
		query = fmt.Sprintf(`SELECT position, owner_id, level FROM properties WHERE %s = ? ORDER BY position ASC`, column)
		args = append(args, value)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var property domain.Property
		if err := rows.Scan(&property.Position, &property.OwnerID, &property.Level); err != nil {
			return nil, fmt.Errorf("list properties: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

func encodePlayerBlobs(player domain.Player) (inventory, rodDurability, spouses, lastAction string, err error) {
	inv := player.Inventory
	if inv == nil {
		inv = []string{}
	}
	invJSON, err := json.Marshal(inv)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode inventory: %w", err)
	}

	rods := player.RodDurability
	if rods == nil {
		rods = map[string]int{}
	}
	rodJSON, err := json.Marshal(rods)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode rod durability: %w", err)
	}

	sp := player.Spouses
	if sp == nil {
		sp = []string{}
	}
	spJSON, err := json.Marshal(sp)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode spouses: %w", err)
	}

	actions := player.LastAction
	if actions == nil {
		actions = map[domain.Action]int64{}
	}
	actionJSON, err := json.Marshal(actions)
	if err != nil {
		return "", "", "", "", fmt.Errorf("encode last actions: %w", err)
	}

	return string(invJSON), string(rodJSON), string(spJSON), string(actionJSON), nil
}

func scanPlayer(scan func(dest ...any) error) (domain.Player, error) {
	var player domain.Player
	var inventory, rodDurability, spouses, lastAction string
	if err := scan(
		&player.ID,
		&player.Nickname,
		&player.Gold,
		&player.Level,
		&player.HP,
		&player.MaxHP,
		&player.Attack,
		&player.Defense,
		&player.Exp,
		&inventory,
		&player.Equipment.Weapon,
		&player.Equipment.Armor,
		&rodDurability,
		&player.Position,
		&spouses,
		&player.PendingProposal,
		&lastAction,
	); err != nil {
		return domain.Player{}, err
	}

	if err := json.Unmarshal([]byte(inventory), &player.Inventory); err != nil {
		return domain.Player{}, fmt.Errorf("decode inventory: %w", err)
	}
	if err := json.Unmarshal([]byte(rodDurability), &player.RodDurability); err != nil {
		return domain.Player{}, fmt.Errorf("decode rod durability: %w", err)
	}
	if err := json.Unmarshal([]byte(spouses), &player.Spouses); err != nil {
		return domain.Player{}, fmt.Errorf("decode spouses: %w", err)
	}
	if err := json.Unmarshal([]byte(lastAction), &player.LastAction); err != nil {
		return domain.Player{}, fmt.Errorf("decode last actions: %w", err)
	}
	return player, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ storage.Store = (*Store)(nil)
