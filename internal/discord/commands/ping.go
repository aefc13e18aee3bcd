package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

const PingCommandName = "ping"

const pingSelectTimeout = 3 * time.Minute

func init() {
	Register(Command{
		Name: PingCommandName,
		Run:  runPing,
	})
}

var (
	selectionsMu sync.Mutex
	selections   = make(map[snowflake.ID]chan string)
)

func awaitSelection(messageID snowflake.ID) chan string {
	ch := make(chan string, 1)
	selectionsMu.Lock()
	selections[messageID] = ch
	selectionsMu.Unlock()
	return ch
}

func forgetSelection(messageID snowflake.ID) {
	selectionsMu.Lock()
	delete(selections, messageID)
	selectionsMu.Unlock()
}

// DeliverSelection hands a select-menu pick to the command waiting on that
// message. It reports whether anything was waiting.
func DeliverSelection(messageID snowflake.ID, value string) bool {
	selectionsMu.Lock()
	ch, ok := selections[messageID]
	if ok {
		delete(selections, messageID)
	}
	selectionsMu.Unlock()
	if !ok {
		return false
	}
	ch <- value
	return true
}

// runPing posts a message with a select menu and waits for one pick. On a
// pick it echoes the value and deletes the menu message; after three minutes
// without one it replies that it timed out and leaves the message in place.
func runPing(ctx context.Context, env *Env, message discord.Message, _ string) {
	if err := env.Client.Rest().DeleteMessage(message.ChannelID, message.ID); err != nil {
		env.Logger.Warn(
			"ping message delete failed",
			slog.Any("err", err),
			slog.String("message_id", message.ID.String()),
		)
	}

	menu := discord.NewStringSelectMenu(
		"ping_select",
		"Placeholder!",
		discord.NewStringSelectMenuOption("Label", "Value"),
	)

	sent, err := env.Client.Rest().CreateMessage(message.ChannelID, discord.NewMessageCreateBuilder().
		SetContent("Pong! :O").
		AddActionRow(menu).
		Build(),
	)
	if err != nil {
		env.Logger.Error(
			"ping message send failed",
			slog.Any("err", err),
			slog.String("channel_id", message.ChannelID.String()),
		)
		return
	}

	ch := awaitSelection(sent.ID)
	defer forgetSelection(sent.ID)

	select {
	case value := <-ch:
		replyTo(env, message.ChannelID, sent.ID, "You selected: "+value)
		if err := env.Client.Rest().DeleteMessage(message.ChannelID, sent.ID); err != nil {
			env.Logger.Warn(
				"ping menu delete failed",
				slog.Any("err", err),
				slog.String("message_id", sent.ID.String()),
			)
		}
	case <-time.After(pingSelectTimeout):
		replyTo(env, message.ChannelID, sent.ID, "Timed out!")
	case <-ctx.Done():
	}
}
