package bus

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"selector-bot/internal/store"
)

const DefaultBuffer = 128

// Bus carries gateway events toward the engine and REST actions toward the
// action worker, so neither side blocks the other's goroutine.
type Bus struct {
	Events  chan Event
	Actions chan Action
}

func New(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &Bus{
		Events:  make(chan Event, buffer),
		Actions: make(chan Action, buffer),
	}
}

type Event interface {
	busEvent()
}

type Action interface {
	busAction()
}

type ReactionAdded struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	UserID    snowflake.ID
	Emoji     discord.PartialEmoji
}

func (ReactionAdded) busEvent() {}

type ReactionRemoved struct {
	GuildID   snowflake.ID
	ChannelID snowflake.ID
	MessageID snowflake.ID
	UserID    snowflake.ID
	Emoji     discord.PartialEmoji
}

func (ReactionRemoved) busEvent() {}

type RoleCreated struct {
	GuildID snowflake.ID
	Role    store.Role
}

func (RoleCreated) busEvent() {}

type RoleUpdated struct {
	GuildID snowflake.ID
	Role    store.Role
}

func (RoleUpdated) busEvent() {}

// GuildSnapshot carries an already-fetched role and emoji listing for one
// guild, ready to be cached without further network calls.
type GuildSnapshot struct {
	GuildID snowflake.ID
	Guild   store.Guild
}

func (GuildSnapshot) busEvent() {}

type GrantRole struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	RoleID  snowflake.ID
}

func (GrantRole) busAction() {}

type RevokeRole struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	RoleID  snowflake.ID
}

func (RevokeRole) busAction() {}
