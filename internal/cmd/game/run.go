package game

import (
	"context"
	"log"
	"os"

	"github.com/louisbranch/wayfarer/internal/game/app"
	"github.com/louisbranch/wayfarer/internal/game/events"
	"github.com/louisbranch/wayfarer/internal/game/storage/sqlite"
	entrypoint "github.com/louisbranch/wayfarer/internal/platform/cmd"
)

// Run opens the store, loads content overrides, and hands control to the
// interactive shell until the context is cancelled or input ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var opts []app.Option
		if cfg.EventsScript != "" {
			table, err := events.LoadTable(cfg.EventsScript)
			if err != nil {
				return err
			}
			log.Printf("loaded event table from %s", cfg.EventsScript)
			opts = append(opts, app.WithEventTable(table))
		}
		if cfg.BestiaryScript != "" {
			bestiary, err := events.LoadBestiary(cfg.BestiaryScript)
			if err != nil {
				return err
			}
			log.Printf("loaded bestiary from %s", cfg.BestiaryScript)
			opts = append(opts, app.WithBestiary(bestiary))
		}

		svc, err := app.New(store, opts...)
		if err != nil {
			return err
		}

		shell := newShell(svc, os.Stdin, os.Stdout)
		return shell.run(ctx)
	})
}
