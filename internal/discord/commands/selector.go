package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"selector-bot/internal/emoji"
	"selector-bot/internal/selector"
	"selector-bot/internal/store"

	"github.com/disgoorg/disgo/discord"
)

const SelectorCommandName = "selector"

func init() {
	Register(Command{
		Name: SelectorCommandName,
		Run:  runSelector,
	})
}

func selectorUsage(prefix string) string {
	return fmt.Sprintf("Usage: `%s%s roles (emoji | role) (emoji | role) ...`", prefix, SelectorCommandName)
}

// runSelector publishes a reaction-role selector message: it sends one
// description line per mapping, seeds the message with the configured emoji,
// and binds the message id to the mappings in the store. Nothing is sent or
// persisted when the body fails to parse.
func runSelector(ctx context.Context, env *Env, message discord.Message, body string) {
	if message.GuildID == nil {
		reply(env, message, "This command can only be used in a server.")
		return
	}
	guildID := *message.GuildID

	sub, rest, _ := strings.Cut(body, " ")
	if strings.TrimSpace(sub) != "roles" {
		reply(env, message, selectorUsage(env.Prefix))
		return
	}

	mappings, lines, err := selector.Parse(rest, env.Store.GuildRoles(guildID))
	if err != nil {
		if errors.Is(err, selector.ErrEmptyBody) {
			reply(env, message, selectorUsage(env.Prefix))
			return
		}
		reply(env, message, err.Error())
		return
	}

	sent, err := env.Client.Rest().CreateMessage(message.ChannelID, discord.NewMessageCreateBuilder().
		SetContent(strings.Join(lines, "\n")).
		Build(),
	)
	if err != nil {
		env.Logger.Error(
			"selector message send failed",
			slog.Any("err", err),
			slog.String("channel_id", message.ChannelID.String()),
		)
		return
	}

	for _, mapping := range mappings {
		if err := env.Client.Rest().AddReaction(message.ChannelID, sent.ID, emoji.Reaction(mapping.Emoji)); err != nil {
			env.Logger.Warn(
				"selector seed reaction failed",
				slog.Any("err", err),
				slog.String("message_id", sent.ID.String()),
				slog.String("emoji", mapping.Emoji),
			)
		}
	}

	if err := env.Store.BindMessage(store.MessageActions{
		MessageID: sent.ID,
		Mappings:  mappings,
	}); err != nil {
		env.Logger.Error(
			"selector binding save failed",
			slog.Any("err", err),
			slog.String("message_id", sent.ID.String()),
		)
		reply(env, message, "Failed to save the selector.")
		return
	}

	env.Logger.Info(
		"selector published",
		slog.String("guild_id", guildID.String()),
		slog.String("message_id", sent.ID.String()),
		slog.Int("mappings", len(mappings)),
	)
	reply(env, message, "Something")
}
