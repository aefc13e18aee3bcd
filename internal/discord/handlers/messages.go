package handlers

import (
	"context"
	"log/slog"
	"strings"

	"selector-bot/internal/discord/commands"

	"github.com/disgoorg/disgo/events"
)

// OnMessageCreate dispatches prefix commands. Everything after the command
// word is handed to the command verbatim; long-running commands get their
// own goroutine so the gateway listener never blocks.
func (h *Handler) OnMessageCreate(event *events.MessageCreate) {
	message := event.Message
	if message.Author.Bot {
		return
	}

	prefix := h.env.Prefix
	if !strings.HasPrefix(message.Content, prefix) {
		return
	}

	rest := strings.TrimPrefix(message.Content, prefix)
	name, body, _ := strings.Cut(rest, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	command, ok := commands.Lookup(name)
	if !ok {
		return
	}

	h.logger.Debug(
		"command received",
		slog.String("command", name),
		slog.String("channel_id", message.ChannelID.String()),
	)

	go command.Run(context.Background(), h.env, message, strings.TrimSpace(body))
}
