package engine

import (
	"path/filepath"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selector-bot/internal/bus"
	"selector-bot/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *bus.Bus, *store.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selectors.json")
	require.NoError(t, store.Init(path))
	st, err := store.Load(path, nil)
	require.NoError(t, err)

	eventBus := bus.New(8)
	return New(st, eventBus, nil), eventBus, st
}

func bindSelector(t *testing.T, st *store.Store) {
	t.Helper()
	require.NoError(t, st.BindMessage(store.MessageActions{
		MessageID: 777,
		Mappings: []store.EmojiRoleMapping{
			{Emoji: "🔥", RoleID: 11},
			{Emoji: "<:blobwave:12345>", RoleID: 22},
		},
	}))
}

func takeAction(t *testing.T, eventBus *bus.Bus) bus.Action {
	t.Helper()
	select {
	case action := <-eventBus.Actions:
		return action
	default:
		t.Fatal("expected an action")
		return nil
	}
}

func assertNoAction(t *testing.T, eventBus *bus.Bus) {
	t.Helper()
	select {
	case action := <-eventBus.Actions:
		t.Fatalf("unexpected action %T", action)
	default:
	}
}

func reaction(name string, id snowflake.ID) discord.PartialEmoji {
	e := discord.PartialEmoji{Name: &name}
	if id != 0 {
		e.ID = &id
	}
	return e
}

func TestReactionAddGrantsMappedRole(t *testing.T) {
	engine, eventBus, st := newTestEngine(t)
	bindSelector(t, st)

	engine.handle(bus.ReactionAdded{
		GuildID:   1,
		MessageID: 777,
		UserID:    42,
		Emoji:     reaction("🔥", 0),
	})

	action := takeAction(t, eventBus)
	assert.Equal(t, bus.GrantRole{GuildID: 1, UserID: 42, RoleID: 11}, action)
	assertNoAction(t, eventBus)
}

func TestReactionAddCustomEmoji(t *testing.T) {
	engine, eventBus, st := newTestEngine(t)
	bindSelector(t, st)

	engine.handle(bus.ReactionAdded{
		GuildID:   1,
		MessageID: 777,
		UserID:    42,
		Emoji:     reaction("blobwave", 12345),
	})

	action := takeAction(t, eventBus)
	assert.Equal(t, bus.GrantRole{GuildID: 1, UserID: 42, RoleID: 22}, action)
}

func TestReactionAddUnmappedEmojiIsIgnored(t *testing.T) {
	engine, eventBus, st := newTestEngine(t)
	bindSelector(t, st)

	engine.handle(bus.ReactionAdded{
		GuildID:   1,
		MessageID: 777,
		UserID:    42,
		Emoji:     reaction("🌊", 0),
	})

	assertNoAction(t, eventBus)
}

func TestReactionAddUnboundMessageIsIgnored(t *testing.T) {
	engine, eventBus, _ := newTestEngine(t)

	engine.handle(bus.ReactionAdded{
		GuildID:   1,
		MessageID: 999,
		UserID:    42,
		Emoji:     reaction("🔥", 0),
	})

	assertNoAction(t, eventBus)
}

func TestReactionAddCustomEmojiWithoutNameIsDropped(t *testing.T) {
	engine, eventBus, st := newTestEngine(t)
	bindSelector(t, st)

	id := snowflake.ID(12345)
	engine.handle(bus.ReactionAdded{
		GuildID:   1,
		MessageID: 777,
		UserID:    42,
		Emoji:     discord.PartialEmoji{ID: &id},
	})

	assertNoAction(t, eventBus)
}

func TestReactionRemoveRevokesMappedRole(t *testing.T) {
	engine, eventBus, st := newTestEngine(t)
	bindSelector(t, st)

	engine.handle(bus.ReactionRemoved{
		GuildID:   1,
		MessageID: 777,
		UserID:    42,
		Emoji:     reaction("🔥", 0),
	})

	action := takeAction(t, eventBus)
	assert.Equal(t, bus.RevokeRole{GuildID: 1, UserID: 42, RoleID: 11}, action)
}

func TestGuildSnapshotHydratesStore(t *testing.T) {
	engine, _, st := newTestEngine(t)

	engine.handle(bus.GuildSnapshot{
		GuildID: 1,
		Guild: store.Guild{
			Emojis: []store.Emoji{{ID: 12345, Name: "blobwave"}},
			Roles:  []store.Role{{ID: 11, Name: "Fire"}},
		},
	})

	role, ok := st.RoleByName(1, "Fire")
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(11), role.ID)
}

func TestRoleCreatedAppendsToKnownGuild(t *testing.T) {
	engine, _, st := newTestEngine(t)
	require.NoError(t, st.ReplaceGuild(1, store.Guild{Roles: []store.Role{{ID: 11, Name: "Fire"}}}))

	engine.handle(bus.RoleCreated{GuildID: 1, Role: store.Role{ID: 22, Name: "Water"}})

	roles := st.GuildRoles(1)
	require.Len(t, roles, 2)
	assert.Equal(t, store.Role{ID: 22, Name: "Water"}, roles[1])
}

func TestRoleCreatedUnknownGuildIsIgnored(t *testing.T) {
	engine, _, st := newTestEngine(t)

	engine.handle(bus.RoleCreated{GuildID: 9, Role: store.Role{ID: 11, Name: "Fire"}})

	assert.False(t, st.GuildKnown(9))
}

func TestRoleUpdatedRefreshesExistingEntry(t *testing.T) {
	engine, _, st := newTestEngine(t)
	require.NoError(t, st.ReplaceGuild(1, store.Guild{
		Roles: []store.Role{{ID: 11, Name: "Fire"}, {ID: 22, Name: "Water"}},
	}))

	engine.handle(bus.RoleUpdated{GuildID: 1, Role: store.Role{ID: 11, Name: "Flame"}})

	roles := st.GuildRoles(1)
	require.Len(t, roles, 2)
	assert.Equal(t, store.Role{ID: 11, Name: "Flame"}, roles[0])
}

func TestRoleUpdatedAbsentRoleStillEndsUpCached(t *testing.T) {
	engine, _, st := newTestEngine(t)
	require.NoError(t, st.ReplaceGuild(1, store.Guild{Roles: []store.Role{{ID: 11, Name: "Fire"}}}))

	engine.handle(bus.RoleUpdated{GuildID: 1, Role: store.Role{ID: 22, Name: "Water"}})

	role, ok := st.RoleByName(1, "Water")
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(22), role.ID)
}
