package handlers

import (
	"log/slog"

	"selector-bot/internal/bus"
	"selector-bot/internal/store"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

// OnGuildReady fetches the guild's role and emoji listing and hands the
// finished snapshot to the engine. The REST calls happen here, on the event
// goroutine, so the store only ever sees already-fetched data.
func (h *Handler) OnGuildReady(event *events.GuildReady) {
	if h.bus == nil {
		return
	}
	guildID := event.GuildID

	roles, err := h.client.Rest().GetRoles(guildID)
	if err != nil {
		h.logger.Error(
			"guild role fetch failed",
			slog.Any("err", err),
			slog.String("guild_id", guildID.String()),
		)
		return
	}

	emojis, err := h.client.Rest().GetEmojis(guildID)
	if err != nil {
		h.logger.Error(
			"guild emoji fetch failed",
			slog.Any("err", err),
			slog.String("guild_id", guildID.String()),
		)
		return
	}

	h.bus.Events <- bus.GuildSnapshot{
		GuildID: guildID,
		Guild:   guildSnapshot(roles, emojis),
	}
}

func (h *Handler) OnRoleCreate(event *events.RoleCreate) {
	if h.bus == nil {
		return
	}
	h.bus.Events <- bus.RoleCreated{
		GuildID: event.GuildID,
		Role: store.Role{
			ID:   event.Role.ID,
			Name: event.Role.Name,
		},
	}
}

func (h *Handler) OnRoleUpdate(event *events.RoleUpdate) {
	if h.bus == nil {
		return
	}
	h.bus.Events <- bus.RoleUpdated{
		GuildID: event.GuildID,
		Role: store.Role{
			ID:   event.Role.ID,
			Name: event.Role.Name,
		},
	}
}

func guildSnapshot(roles []discord.Role, emojis []discord.Emoji) store.Guild {
	guild := store.Guild{
		Emojis: make([]store.Emoji, 0, len(emojis)),
		Roles:  make([]store.Role, 0, len(roles)),
	}
	for _, e := range emojis {
		guild.Emojis = append(guild.Emojis, store.Emoji{
			ID:       e.ID,
			Name:     e.Name,
			Animated: e.Animated,
		})
	}
	for _, r := range roles {
		guild.Roles = append(guild.Roles, store.Role{
			ID:   r.ID,
			Name: r.Name,
		})
	}
	return guild
}
