package actions

import (
	"context"
	"fmt"
	"log/slog"

	"selector-bot/internal/bus"

	"github.com/disgoorg/disgo/bot"
)

// StartActionWorker drains the action channel and performs the REST calls
// the engine asked for. Failures are logged and dropped; there is no retry.
func StartActionWorker(ctx context.Context, client bot.Client, eventBus *bus.Bus, logger *slog.Logger) {
	if eventBus == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case action, ok := <-eventBus.Actions:
				if !ok {
					return
				}
				handleAction(client, logger, action)
			}
		}
	}()
}

func handleAction(client bot.Client, logger *slog.Logger, action bus.Action) {
	switch payload := action.(type) {
	case bus.GrantRole:
		err := client.Rest().AddMemberRole(payload.GuildID, payload.UserID, payload.RoleID)
		if err != nil {
			logger.Error(
				"role grant failed",
				slog.Any("err", err),
				slog.String("guild_id", payload.GuildID.String()),
				slog.String("user_id", payload.UserID.String()),
				slog.String("role_id", payload.RoleID.String()),
			)
		}
	case bus.RevokeRole:
		err := client.Rest().RemoveMemberRole(payload.GuildID, payload.UserID, payload.RoleID)
		if err != nil {
			logger.Error(
				"role revoke failed",
				slog.Any("err", err),
				slog.String("guild_id", payload.GuildID.String()),
				slog.String("user_id", payload.UserID.String()),
				slog.String("role_id", payload.RoleID.String()),
			)
		}
	default:
		logger.Warn("unknown bus action", slog.String("type", fmt.Sprintf("%T", action)))
	}
}
