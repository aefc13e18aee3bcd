package engine

import (
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"selector-bot/internal/bus"
	"selector-bot/internal/emoji"
)

func (e *Engine) handleReactionAdded(event bus.ReactionAdded) {
	roleID, ok := e.resolveRole(event.MessageID, event.Emoji)
	if !ok {
		return
	}
	e.bus.Actions <- bus.GrantRole{
		GuildID: event.GuildID,
		UserID:  event.UserID,
		RoleID:  roleID,
	}
}

func (e *Engine) handleReactionRemoved(event bus.ReactionRemoved) {
	roleID, ok := e.resolveRole(event.MessageID, event.Emoji)
	if !ok {
		return
	}
	e.bus.Actions <- bus.RevokeRole{
		GuildID: event.GuildID,
		UserID:  event.UserID,
		RoleID:  roleID,
	}
}

// resolveRole maps a reaction on a bound selector message to the role it
// stands for. Reactions on unbound messages and emoji without a binding are
// ignored; a custom emoji without a name aborts just this event.
func (e *Engine) resolveRole(messageID snowflake.ID, reacted discord.PartialEmoji) (snowflake.ID, bool) {
	actions, ok := e.store.Actions(messageID)
	if !ok {
		return 0, false
	}

	key, err := emoji.Key(reacted)
	if err != nil {
		e.logger.Error(
			"reaction emoji rejected",
			slog.Any("err", err),
			slog.String("message_id", messageID.String()),
		)
		return 0, false
	}
	if key == "" {
		return 0, false
	}

	for _, mapping := range actions.Mappings {
		if mapping.Emoji == key {
			return mapping.RoleID, true
		}
	}
	return 0, false
}
