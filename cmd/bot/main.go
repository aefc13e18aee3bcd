package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"selector-bot/internal/bus"
	"selector-bot/internal/config"
	discordbridge "selector-bot/internal/discord"
	discordactions "selector-bot/internal/discord/actions"
	"selector-bot/internal/discord/commands"
	"selector-bot/internal/engine"
	"selector-bot/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	logger := slog.Default()

	_ = godotenv.Load()
	token := strings.TrimSpace(os.Getenv("DISCORD_TOKEN"))
	if token == "" {
		logger.Error("DISCORD_TOKEN is not set")
		os.Exit(1)
	}

	cfg, err := readConfig(logger)
	if err != nil {
		logger.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	st, err := openStore(cfg.Storage.Path, logger)
	if err != nil {
		logger.Error("store load failed", slog.Any("err", err))
		os.Exit(1)
	}

	eventBus := bus.New(bus.DefaultBuffer)

	botConfig := discordbridge.DefaultConfig()
	botConfig.Token = token
	botConfig.Prefix = cfg.Commands.Prefix

	discordBot, err := discordbridge.New(botConfig, eventBus, st, logger)
	if err != nil {
		logger.Error("failed to create discord client", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine.Start(ctx, st, eventBus, logger)
	discordactions.StartActionWorker(ctx, discordBot.Client(), eventBus, logger)

	if err := discordBot.Start(ctx); err != nil {
		logger.Error("gateway connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info(
		"bot started",
		slog.String("prefix", cfg.Commands.Prefix),
		slog.String("commands", strings.Join(commands.All(), ", ")),
	)

	<-ctx.Done()
	discordBot.Close(context.Background())
}

func readConfig(logger *slog.Logger) (config.Config, error) {
	const configFile = "config.yaml"
	cfg, err := config.Load(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}

		if len(config.DefaultConfigYAML) == 0 {
			return cfg, errors.New("embedded config template missing")
		}
		if err := os.WriteFile(configFile, config.DefaultConfigYAML, 0644); err != nil {
			return cfg, err
		}
		logger.Info("created config.yaml from embedded config.example.yaml")
		return config.Default(), nil
	}
	return cfg, nil
}

// openStore bootstraps a missing store file once, then loads it. An existing
// but unreadable or unparseable file stays fatal; it is not overwritten.
func openStore(path string, logger *slog.Logger) (*store.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := store.Init(path); err != nil {
			return nil, err
		}
		logger.Info("created empty store file", slog.String("path", path))
	}
	return store.Load(path, logger)
}
