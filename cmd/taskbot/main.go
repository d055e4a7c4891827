package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/avdeeva/task-tracker-bot/internal/bot"
	"github.com/avdeeva/task-tracker-bot/internal/config"
	"github.com/avdeeva/task-tracker-bot/internal/session"
	"github.com/avdeeva/task-tracker-bot/internal/store"
	"github.com/avdeeva/task-tracker-bot/internal/telegram"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			fmt.Fprintln(os.Stderr, "❌ BOT_TOKEN is not set; export it or add bot_token to the config file")
		} else {
			fmt.Fprintln(os.Stderr, "loading config:", err)
		}
		os.Exit(1)
	}

	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("bot stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("closing store", "error", err)
		}
	}()

	router := bot.NewRouter(st, session.NewManager(), log)

	tg, err := telegram.New(cfg.BotToken, router, log)
	if err != nil {
		return err
	}

	log.Info("task tracker bot started", "db", cfg.DBPath)
	return tg.Run(ctx)
}

// mustMakeLogger builds a text slog logger at the configured level.
func mustMakeLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
