package engine

import (
	"log/slog"

	"github.com/disgoorg/snowflake/v2"

	"selector-bot/internal/bus"
	"selector-bot/internal/store"
)

func (e *Engine) handleGuildSnapshot(event bus.GuildSnapshot) {
	if err := e.store.ReplaceGuild(event.GuildID, event.Guild); err != nil {
		e.logger.Error(
			"guild snapshot save failed",
			slog.Any("err", err),
			slog.String("guild_id", event.GuildID.String()),
		)
		return
	}
	e.logger.Info(
		"guild hydrated",
		slog.String("guild_id", event.GuildID.String()),
		slog.Int("roles", len(event.Guild.Roles)),
		slog.Int("emojis", len(event.Guild.Emojis)),
	)
}

func (e *Engine) handleRoleCreated(event bus.RoleCreated) {
	e.upsertRole(event.GuildID, event.Role)
}

func (e *Engine) handleRoleUpdated(event bus.RoleUpdated) {
	e.upsertRole(event.GuildID, event.Role)
}

func (e *Engine) upsertRole(guildID snowflake.ID, role store.Role) {
	known, err := e.store.UpsertRole(guildID, role)
	if err != nil {
		e.logger.Error(
			"role cache save failed",
			slog.Any("err", err),
			slog.String("guild_id", guildID.String()),
			slog.String("role_id", role.ID.String()),
		)
		return
	}
	if !known {
		e.logger.Debug(
			"role event for unknown guild",
			slog.String("guild_id", guildID.String()),
			slog.String("role_id", role.ID.String()),
		)
	}
}
