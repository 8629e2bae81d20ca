// Package app implements the game's application layer: every player-facing
// operation, serialized per player, on top of the core engines and the
// storage contracts.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/wayfarer/internal/core/dice"
	"github.com/louisbranch/wayfarer/internal/game/events"
	"github.com/louisbranch/wayfarer/internal/game/items"
	"github.com/louisbranch/wayfarer/internal/game/storage"
	apperrors "github.com/louisbranch/wayfarer/internal/platform/errors"
	"github.com/louisbranch/wayfarer/internal/platform/random"
)

// Cooldowns between player actions.
const (
	AdventureCooldown = 60 * time.Second
	AttackCooldown    = 300 * time.Second
	UseItemCooldown   = 5 * time.Second
)

// Service exposes the game operations. All methods are safe for concurrent
// use; actions by the same player are serialized.
type Service struct {
	store    storage.Store
	catalog  items.Catalog
	table    events.Table
	bestiary events.Bestiary
	clock    func() time.Time
	newID    func() string
	tracer   trace.Tracer
	rng      dice.RNG
	locks    *playerLocks
}

// Option adjusts a Service during construction.
type Option func(*Service)

// WithClock overrides the wall clock, used by cooldown and check-in tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithRNG overrides the randomness source for deterministic outcomes.
func WithRNG(rng dice.RNG) Option {
	return func(s *Service) { s.rng = rng }
}

// WithCatalog overrides the item catalog.
func WithCatalog(catalog items.Catalog) Option {
	return func(s *Service) { s.catalog = catalog }
}

// WithEventTable overrides the opportunity event table.
func WithEventTable(table events.Table) Option {
	return func(s *Service) { s.table = table }
}

// WithBestiary overrides the monster pool.
func WithBestiary(bestiary events.Bestiary) Option {
	return func(s *Service) { s.bestiary = bestiary }
}

// New creates a game service on top of the given store.
func New(store storage.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	s := &Service{
		store:    store,
		catalog:  items.Default(),
		table:    events.DefaultTable(),
		bestiary: events.DefaultBestiary(),
		clock:    time.Now,
		newID:    uuid.NewString,
		tracer:   otel.Tracer("wayfarer/game"),
		locks:    newPlayerLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("seed rng: %w", err)
		}
		s.rng = &lockedRNG{rng: dice.New(seed)}
	}

	if err := s.table.Validate(); err != nil {
		return nil, fmt.Errorf("event table: %w", err)
	}
	if err := s.bestiary.Validate(); err != nil {
		return nil, fmt.Errorf("bestiary: %w", err)
	}
	return s, nil
}

// lockedRNG makes a dice.RNG safe for concurrent use.
type lockedRNG struct {
	mu  sync.Mutex
	rng dice.RNG
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRNG) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// insufficientFunds builds the standard not-enough-gold error.
func insufficientFunds(required, available int) error {
	return apperrors.WithMetadata(apperrors.CodeInsufficientFunds, "not enough gold", map[string]string{
		"required":  fmt.Sprintf("%d", required),
		"available": fmt.Sprintf("%d", available),
	})
}

// checkCooldown returns a cooldown error when the action fired more recently
// than the given duration.
func (s *Service) checkCooldown(last time.Time, cooldown time.Duration) error {
	if last.IsZero() {
		return nil
	}
	remaining := cooldown - s.clock().Sub(last)
	if remaining <= 0 {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeCooldownActive, "action is on cooldown", map[string]string{
		"seconds": fmt.Sprintf("%d", int(remaining.Seconds())+1),
	})
}
