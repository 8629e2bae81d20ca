// Package game parses game command flags and runs the interactive game shell.
package game

import (
	"flag"

	entrypoint "github.com/louisbranch/wayfarer/internal/platform/cmd"
)

// Config holds game command configuration.
type Config struct {
	DBPath         string `env:"WAYFARER_GAME_DB" envDefault:"wayfarer.db"`
	EventsScript   string `env:"WAYFARER_GAME_EVENTS_SCRIPT"`
	BestiaryScript string `env:"WAYFARER_GAME_BESTIARY_SCRIPT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the SQLite database file")
	fs.StringVar(&cfg.EventsScript, "events", cfg.EventsScript, "Lua script overriding the opportunity event table")
	fs.StringVar(&cfg.BestiaryScript, "bestiary", cfg.BestiaryScript, "Lua script overriding the monster bestiary")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
