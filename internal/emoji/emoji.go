package emoji

import (
	"errors"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// ErrMissingName means the gateway delivered a custom emoji without a name.
// That breaks the key format and the event carrying it must be dropped.
var ErrMissingName = errors.New("custom emoji has no name")

// Key converts a reaction emoji into its canonical string form: custom emoji
// become "<:name:id>", unicode emoji stay as-is. An emoji with neither an id
// nor a name yields an empty key, which callers treat as "not found".
func Key(e discord.PartialEmoji) (string, error) {
	if e.ID != nil {
		if e.Name == nil || *e.Name == "" {
			return "", ErrMissingName
		}
		return "<:" + *e.Name + ":" + e.ID.String() + ">", nil
	}
	if e.Name == nil || *e.Name == "" {
		return "", nil
	}
	return *e.Name, nil
}

// Reaction converts a key back into the token the REST API expects when
// adding a reaction: "name:id" for custom emoji, the raw string for unicode.
// The animated flag of custom emoji does not survive the round trip; keys
// always re-post as non-animated.
func Reaction(key string) string {
	name, id, ok := parseCustom(key)
	if !ok {
		return key
	}
	return name + ":" + id.String()
}

// Parse reconstructs the emoji payload a key stands for.
func Parse(key string) discord.PartialEmoji {
	name, id, ok := parseCustom(key)
	if ok {
		return discord.PartialEmoji{ID: &id, Name: &name}
	}
	unicode := key
	return discord.PartialEmoji{Name: &unicode}
}

func parseCustom(key string) (string, snowflake.ID, bool) {
	if !strings.HasPrefix(key, "<") {
		return "", 0, false
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(key, "<"), ">")
	parts := strings.Split(trimmed, ":")
	if len(parts) != 3 {
		return "", 0, false
	}
	id, err := snowflake.Parse(parts[2])
	if err != nil {
		return "", 0, false
	}
	return parts[1], id, true
}
