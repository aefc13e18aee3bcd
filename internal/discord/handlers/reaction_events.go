package handlers

import (
	"context"

	"selector-bot/internal/bus"

	"github.com/disgoorg/disgo/events"
)

// OnGuildMessageReactionAdd forwards user reactions to the bus. The bot's
// own seed reactions on selector messages must not grant it roles, so bot
// users are filtered here.
func (h *Handler) OnGuildMessageReactionAdd(event *events.GuildMessageReactionAdd) {
	if h.bus == nil {
		return
	}

	if event.Member.User.ID != 0 && event.Member.User.ID == event.UserID {
		if event.Member.User.Bot {
			h.cacheBotUser(event.UserID, true)
			return
		}
		h.cacheBotUser(event.UserID, false)
	} else if h.isBotUser(context.Background(), event.GuildID, event.UserID) {
		return
	}

	h.bus.Events <- bus.ReactionAdded{
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
		MessageID: event.MessageID,
		UserID:    event.UserID,
		Emoji:     event.Emoji,
	}
}

func (h *Handler) OnGuildMessageReactionRemove(event *events.GuildMessageReactionRemove) {
	if h.bus == nil {
		return
	}
	if h.isBotUser(context.Background(), event.GuildID, event.UserID) {
		return
	}

	h.bus.Events <- bus.ReactionRemoved{
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
		MessageID: event.MessageID,
		UserID:    event.UserID,
		Emoji:     event.Emoji,
	}
}
