package discord

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"selector-bot/internal/bus"
	"selector-bot/internal/discord/handlers"
	"selector-bot/internal/store"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
)

type Config struct {
	Token   string
	Prefix  string
	Intents gateway.Intents
}

func DefaultConfig() Config {
	return Config{
		Prefix: "~",
		Intents: gateway.IntentGuilds |
			gateway.IntentGuildMessages |
			gateway.IntentGuildMessageReactions |
			gateway.IntentMessageContent,
	}
}

type Bot struct {
	client  bot.Client
	handler *handlers.Handler
}

func New(cfg Config, eventBus *bus.Bus, st *store.Store, logger *slog.Logger) (*Bot, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("discord token is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Intents == 0 {
		cfg.Intents = DefaultConfig().Intents
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultConfig().Prefix
	}

	var handler *handlers.Handler
	client, err := disgo.New(cfg.Token,
		bot.WithLogger(logger),
		bot.WithGatewayConfigOpts(gateway.WithIntents(cfg.Intents)),
		bot.WithEventListenerFunc(func(event *events.GuildReady) {
			if handler != nil {
				handler.OnGuildReady(event)
			}
		}),
		bot.WithEventListenerFunc(func(event *events.RoleCreate) {
			if handler != nil {
				handler.OnRoleCreate(event)
			}
		}),
		bot.WithEventListenerFunc(func(event *events.RoleUpdate) {
			if handler != nil {
				handler.OnRoleUpdate(event)
			}
		}),
		bot.WithEventListenerFunc(func(event *events.GuildMessageReactionAdd) {
			if handler != nil {
				handler.OnGuildMessageReactionAdd(event)
			}
		}),
		bot.WithEventListenerFunc(func(event *events.GuildMessageReactionRemove) {
			if handler != nil {
				handler.OnGuildMessageReactionRemove(event)
			}
		}),
		bot.WithEventListenerFunc(func(event *events.MessageCreate) {
			if handler != nil {
				handler.OnMessageCreate(event)
			}
		}),
		bot.WithEventListenerFunc(func(event *events.ComponentInteractionCreate) {
			if handler != nil {
				handler.OnComponentInteraction(event)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	handler = handlers.New(client, eventBus, st, logger, cfg.Prefix)

	return &Bot{
		client:  client,
		handler: handler,
	}, nil
}

func (b *Bot) Start(ctx context.Context) error {
	return b.client.OpenGateway(ctx)
}

func (b *Bot) Close(ctx context.Context) {
	b.client.Close(ctx)
}

func (b *Bot) Client() bot.Client {
	return b.client
}
