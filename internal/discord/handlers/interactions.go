package handlers

import (
	"selector-bot/internal/discord/commands"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

// OnComponentInteraction routes select-menu picks back to the command
// waiting on them. Interactions on messages nobody waits for are ignored.
func (h *Handler) OnComponentInteraction(event *events.ComponentInteractionCreate) {
	data, ok := event.Data.(discord.StringSelectMenuInteractionData)
	if !ok || len(data.Values) == 0 {
		return
	}

	if commands.DeliverSelection(event.Message.ID, data.Values[0]) {
		_ = event.DeferUpdateMessage()
	}
}
