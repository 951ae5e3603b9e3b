// Package config loads runtime settings from the environment.
//
// A `.env` file in the working directory is read first (development), then
// the process environment is parsed into Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting for the console game and the HTTP API.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Catalog
	WordsFile   string `env:"WORDS_FILE"`   // CSV or YAML topic/word list
	DatabaseDSN string `env:"DATABASE_DSN"` // SQLite catalog; seeded on first use
	DailySalt   string `env:"DAILY_SALT" envDefault:"ahorcado"`

	// Console
	TurnPause   time.Duration `env:"TURN_PAUSE" envDefault:"1s"`
	HistoryFile string        `env:"HISTORY_FILE"`

	// HTTP API
	Port              string        `env:"PORT" envDefault:"5175"`
	ClientOrigin      string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	GameTokenTTL      time.Duration `env:"GAME_TOKEN_TTL" envDefault:"24h"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
}

// Load reads `.env` (if present) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}
