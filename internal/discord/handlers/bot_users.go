package handlers

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// isBotUser reports whether a reacting user is a bot. Reaction-remove events
// carry no member payload, so the answer comes from the member cache, a REST
// lookup as a fallback, and a local cache so each user is resolved once.
func (h *Handler) isBotUser(_ context.Context, guildID snowflake.ID, userID snowflake.ID) bool {
	if userID == 0 {
		return false
	}

	h.botUserCacheMu.RLock()
	isBot, ok := h.botUserCache[userID]
	h.botUserCacheMu.RUnlock()
	if ok {
		return isBot
	}

	if h.client == nil {
		return false
	}

	if member, ok := h.client.Caches().Member(guildID, userID); ok {
		h.cacheBotUser(userID, member.User.Bot)
		return member.User.Bot
	}

	member, err := h.client.Rest().GetMember(guildID, userID)
	if err != nil {
		return false
	}
	h.cacheBotUser(userID, member.User.Bot)
	return member.User.Bot
}

func (h *Handler) cacheBotUser(userID snowflake.ID, isBot bool) {
	h.botUserCacheMu.Lock()
	h.botUserCache[userID] = isBot
	h.botUserCacheMu.Unlock()
}
