package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ahorcado/internal/config"
	"github.com/robalobadob/ahorcado/internal/console"
	"github.com/robalobadob/ahorcado/internal/diagram"
	"github.com/robalobadob/ahorcado/internal/httpserver"
	"github.com/robalobadob/ahorcado/internal/store"
	"github.com/robalobadob/ahorcado/internal/words"
)

const usage = `usage: ahorcado [command]

commands:
  play                 play in the terminal (default)
  serve                start the HTTP API
  hash-password <pw>   print a bcrypt hash for ADMIN_PASSWORD_HASH`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cmd := "play"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case "play":
		err = play(ctx, cfg)
	case "serve":
		err = serve(ctx, cfg)
	case "hash-password":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		var h string
		h, err = httpserver.HashPassword(os.Args[2])
		if err == nil {
			fmt.Println(h)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("failed")
	}
}

func play(ctx context.Context, cfg config.Config) error {
	catalog, err := words.Open(ctx, words.Options{File: cfg.WordsFile, DSN: cfg.DatabaseDSN})
	if err != nil {
		return fmt.Errorf("load word catalog: %w", err)
	}
	defer words.Close(catalog)

	rl, err := console.NewReadline(cfg.HistoryFile)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer rl.Close()

	ctl := console.New(rl, os.Stdout, diagram.New(nil), cfg.TurnPause)
	res, err := ctl.Run(ctx, catalog)
	if errors.Is(err, console.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Debug().Bool("won", res.Won).Int("points", res.Points).Msg("session over")
	return nil
}

func serve(ctx context.Context, cfg config.Config) error {
	catalog, err := words.Open(ctx, words.Options{File: cfg.WordsFile, DSN: cfg.DatabaseDSN})
	if err != nil {
		return fmt.Errorf("load word catalog: %w", err)
	}
	defer words.Close(catalog)
	if strings.HasPrefix(cfg.JWTSecret, "dev_") {
		log.Warn().Msg("JWT_SECRET is the development default")
	}

	srv := httpserver.New(store.NewMemoryStore(), catalog, httpserver.Options{
		JWTSecret:         cfg.JWTSecret,
		TokenTTL:          cfg.GameTokenTTL,
		AdminPasswordHash: cfg.AdminPasswordHash,
		DailySalt:         cfg.DailySalt,
		ClientOrigin:      cfg.ClientOrigin,
	})
	go srv.Janitor(ctx, time.Minute)

	log.Info().Str("port", cfg.Port).Msg("starting ahorcado server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
