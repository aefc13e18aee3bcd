package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selectors.json")
	require.NoError(t, Init(path))
	st, err := Load(path, nil)
	require.NoError(t, err)
	return st
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
}

func TestLoadInvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0644))

	_, err := Load(path, nil)
	require.Error(t, err)
}

func TestInitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.json")
	require.NoError(t, Init(path))
	require.Error(t, Init(path))
}

func TestReplaceGuildAndRoleByName(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.ReplaceGuild(1, Guild{
		Roles: []Role{{ID: 11, Name: "Fire"}, {ID: 22, Name: "Water"}},
	}))

	role, ok := st.RoleByName(1, "Fire")
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(11), role.ID)

	_, ok = st.RoleByName(1, "fire")
	assert.False(t, ok, "role lookup must be case-sensitive")

	_, ok = st.RoleByName(2, "Fire")
	assert.False(t, ok)
}

func TestReplaceGuildOverwritesWholesale(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.ReplaceGuild(1, Guild{Roles: []Role{{ID: 11, Name: "Fire"}}}))
	require.NoError(t, st.ReplaceGuild(1, Guild{Roles: []Role{{ID: 22, Name: "Water"}}}))

	_, ok := st.RoleByName(1, "Fire")
	assert.False(t, ok)
	roles := st.GuildRoles(1)
	require.Len(t, roles, 1)
	assert.Equal(t, "Water", roles[0].Name)
}

func TestUpsertRoleRefreshesInPlace(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ReplaceGuild(1, Guild{
		Roles: []Role{{ID: 11, Name: "Fire"}, {ID: 22, Name: "Water"}},
	}))

	known, err := st.UpsertRole(1, Role{ID: 11, Name: "Flame"})
	require.NoError(t, err)
	require.True(t, known)

	roles := st.GuildRoles(1)
	require.Len(t, roles, 2)
	assert.Equal(t, Role{ID: 11, Name: "Flame"}, roles[0], "updated role keeps its position")
	assert.Equal(t, Role{ID: 22, Name: "Water"}, roles[1])
}

func TestUpsertRoleAppendsWhenAbsent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ReplaceGuild(1, Guild{Roles: []Role{{ID: 11, Name: "Fire"}}}))

	known, err := st.UpsertRole(1, Role{ID: 22, Name: "Water"})
	require.NoError(t, err)
	require.True(t, known)

	roles := st.GuildRoles(1)
	require.Len(t, roles, 2)
	assert.Equal(t, Role{ID: 22, Name: "Water"}, roles[1])
}

func TestUpsertRoleUnknownGuildIsNoOp(t *testing.T) {
	st := newTestStore(t)

	known, err := st.UpsertRole(9, Role{ID: 11, Name: "Fire"})
	require.NoError(t, err)
	assert.False(t, known)
	assert.False(t, st.GuildKnown(9))
}

func TestRemoveRole(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ReplaceGuild(1, Guild{
		Roles: []Role{{ID: 11, Name: "Fire"}, {ID: 22, Name: "Water"}},
	}))

	removed, err := st.RemoveRole(1, 11)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []Role{{ID: 22, Name: "Water"}}, st.GuildRoles(1))

	removed, err = st.RemoveRole(1, 11)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestBindMessageSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.json")
	require.NoError(t, Init(path))
	st, err := Load(path, nil)
	require.NoError(t, err)

	require.NoError(t, st.ReplaceGuild(1, Guild{
		Emojis: []Emoji{{ID: 12345, Name: "blobwave"}},
		Roles:  []Role{{ID: 11, Name: "Fire"}},
	}))
	require.NoError(t, st.BindMessage(MessageActions{
		MessageID: 777,
		Mappings: []EmojiRoleMapping{
			{Emoji: "🔥", RoleID: 11},
			{Emoji: "<:blobwave:12345>", RoleID: 22},
		},
	}))

	reloaded, err := Load(path, nil)
	require.NoError(t, err)

	actions, ok := reloaded.Actions(777)
	require.True(t, ok)
	assert.Equal(t, []EmojiRoleMapping{
		{Emoji: "🔥", RoleID: 11},
		{Emoji: "<:blobwave:12345>", RoleID: 22},
	}, actions.Mappings)

	role, ok := reloaded.RoleByName(1, "Fire")
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(11), role.ID)
}

func TestBindMessageRequiresID(t *testing.T) {
	st := newTestStore(t)
	require.Error(t, st.BindMessage(MessageActions{}))
}

func TestConcurrentBindMessageLosesNothing(t *testing.T) {
	st := newTestStore(t)

	const n = 32
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(id snowflake.ID) {
			defer wg.Done()
			err := st.BindMessage(MessageActions{
				MessageID: id,
				Mappings:  []EmojiRoleMapping{{Emoji: fmt.Sprintf("emoji-%d", id), RoleID: id}},
			})
			assert.NoError(t, err)
		}(snowflake.ID(i))
	}
	wg.Wait()

	for i := 1; i <= n; i++ {
		actions, ok := st.Actions(snowflake.ID(i))
		require.True(t, ok, "message %d lost", i)
		require.Len(t, actions.Mappings, 1)
	}

	reloaded, err := Load(st.path, nil)
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		_, ok := reloaded.Actions(snowflake.ID(i))
		assert.True(t, ok, "message %d not persisted", i)
	}
}

func TestActionsReturnsCopies(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.BindMessage(MessageActions{
		MessageID: 777,
		Mappings:  []EmojiRoleMapping{{Emoji: "🔥", RoleID: 11}},
	}))

	actions, ok := st.Actions(777)
	require.True(t, ok)
	actions.Mappings[0].Emoji = "💀"

	again, ok := st.Actions(777)
	require.True(t, ok)
	assert.Equal(t, "🔥", again.Mappings[0].Emoji)
}
