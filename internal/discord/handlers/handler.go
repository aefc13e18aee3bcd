package handlers

import (
	"log/slog"
	"sync"

	"selector-bot/internal/bus"
	"selector-bot/internal/discord/commands"
	"selector-bot/internal/store"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/snowflake/v2"
)

type Handler struct {
	client bot.Client
	bus    *bus.Bus
	store  *store.Store
	logger *slog.Logger
	env    *commands.Env

	botUserCache   map[snowflake.ID]bool
	botUserCacheMu sync.RWMutex
}

func New(client bot.Client, eventBus *bus.Bus, st *store.Store, logger *slog.Logger, prefix string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		client: client,
		bus:    eventBus,
		store:  st,
		logger: logger,
		env: &commands.Env{
			Client: client,
			Bus:    eventBus,
			Store:  st,
			Logger: logger,
			Prefix: prefix,
		},
		botUserCache: make(map[snowflake.ID]bool),
	}
}
