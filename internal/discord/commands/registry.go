package commands

import (
	"context"
	"log/slog"
	"sort"

	"selector-bot/internal/bus"
	"selector-bot/internal/store"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Env is everything a command execution needs, injected once at startup.
type Env struct {
	Client bot.Client
	Bus    *bus.Bus
	Store  *store.Store
	Logger *slog.Logger
	Prefix string
}

// Command is one prefix command. Use one file per command and register in init.
type Command struct {
	Name string
	Run  func(ctx context.Context, env *Env, message discord.Message, body string)
}

var registry = make(map[string]Command)

func Register(command Command) {
	if command.Name == "" || command.Run == nil {
		return
	}
	registry[command.Name] = command
}

func Lookup(name string) (Command, bool) {
	command, ok := registry[name]
	return command, ok
}

// All returns the names of every registered command, sorted.
func All() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func reply(env *Env, message discord.Message, content string) {
	replyTo(env, message.ChannelID, message.ID, content)
}

func replyTo(env *Env, channelID snowflake.ID, messageID snowflake.ID, content string) {
	_, err := env.Client.Rest().CreateMessage(channelID, discord.NewMessageCreateBuilder().
		SetContent(content).
		SetMessageReferenceByID(messageID).
		Build(),
	)
	if err != nil {
		env.Logger.Warn(
			"command reply failed",
			slog.Any("err", err),
			slog.String("channel_id", channelID.String()),
		)
	}
}
