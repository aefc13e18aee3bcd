package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
)

type Role struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}

type Emoji struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Animated bool         `json:"animated,omitempty"`
}

type Guild struct {
	Emojis []Emoji `json:"emojis"`
	Roles  []Role  `json:"roles"`
}

type EmojiRoleMapping struct {
	Emoji  string       `json:"emoji"`
	RoleID snowflake.ID `json:"role_id"`
}

type MessageActions struct {
	MessageID snowflake.ID       `json:"message_id"`
	Mappings  []EmojiRoleMapping `json:"mappings"`
}

type container struct {
	Guilds   map[snowflake.ID]*Guild          `json:"guilds"`
	Messages map[snowflake.ID]*MessageActions `json:"messages"`
}

// Store is the durable aggregate of guild caches and selector bindings.
// One instance owns the backing file for the lifetime of the process; every
// mutation runs as a single locked read-modify-write-save sequence.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	data   container
}

// Load reads and parses the backing file. A missing or unparseable file is
// an error; use Init to bootstrap a fresh file.
func Load(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}

	var data container
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse store %s: %w", path, err)
	}
	if data.Guilds == nil {
		data.Guilds = make(map[snowflake.ID]*Guild)
	}
	if data.Messages == nil {
		data.Messages = make(map[snowflake.ID]*MessageActions)
	}

	return &Store{
		path:   path,
		logger: logger,
		data:   data,
	}, nil
}

// Init writes an empty store file. It refuses to overwrite an existing file.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("store %s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}

	raw, err := json.Marshal(container{
		Guilds:   make(map[snowflake.ID]*Guild),
		Messages: make(map[snowflake.ID]*MessageActions),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// save writes the whole container to a temp file and renames it over the
// backing file, so an interrupted write never leaves an invalid store.
// Callers must hold s.mu.
func (s *Store) save() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("serialize store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace store %s: %w", s.path, err)
	}
	return nil
}

// RoleByName looks up a cached guild role by exact, case-sensitive name.
func (s *Store) RoleByName(guildID snowflake.ID, name string) (Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.data.Guilds[guildID]
	if !ok {
		return Role{}, false
	}
	for _, role := range guild.Roles {
		if role.Name == name {
			return role, true
		}
	}
	return Role{}, false
}

// GuildRoles returns a copy of the cached role list for a guild.
func (s *Store) GuildRoles(guildID snowflake.ID) []Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.data.Guilds[guildID]
	if !ok {
		return nil
	}
	return append([]Role(nil), guild.Roles...)
}

// GuildKnown reports whether the guild has been hydrated into the cache.
func (s *Store) GuildKnown(guildID snowflake.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.data.Guilds[guildID]
	return ok
}

// Actions returns a copy of the selector binding for a message, if any.
func (s *Store) Actions(messageID snowflake.ID) (MessageActions, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, ok := s.data.Messages[messageID]
	if !ok {
		return MessageActions{}, false
	}
	clone := MessageActions{
		MessageID: actions.MessageID,
		Mappings:  append([]EmojiRoleMapping(nil), actions.Mappings...),
	}
	return clone, true
}

// ReplaceGuild overwrites the cached snapshot for a guild wholesale and
// persists. This is the only operation that introduces new guilds.
func (s *Store) ReplaceGuild(guildID snowflake.ID, guild Guild) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Guilds[guildID] = &Guild{
		Emojis: append([]Emoji(nil), guild.Emojis...),
		Roles:  append([]Role(nil), guild.Roles...),
	}
	return s.save()
}

// UpsertRole refreshes a cached role in place, or appends it when absent.
// Unknown guilds are a no-op; hydration is the only way guilds appear.
func (s *Store) UpsertRole(guildID snowflake.ID, role Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.data.Guilds[guildID]
	if !ok {
		return false, nil
	}

	for i := range guild.Roles {
		if guild.Roles[i].ID == role.ID {
			guild.Roles[i] = role
			return true, s.save()
		}
	}
	guild.Roles = append(guild.Roles, role)
	return true, s.save()
}

// RemoveRole drops a role from a guild's cache. Removing a role that is not
// cached is a no-op.
func (s *Store) RemoveRole(guildID snowflake.ID, roleID snowflake.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guild, ok := s.data.Guilds[guildID]
	if !ok {
		return false, nil
	}

	kept := guild.Roles[:0]
	removed := false
	for _, role := range guild.Roles {
		if role.ID == roleID {
			removed = true
			continue
		}
		kept = append(kept, role)
	}
	guild.Roles = kept
	if !removed {
		return false, nil
	}
	return true, s.save()
}

// BindMessage inserts a finished selector binding and persists it.
func (s *Store) BindMessage(actions MessageActions) error {
	if actions.MessageID == 0 {
		return fmt.Errorf("bind message: missing message id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Messages[actions.MessageID] = &MessageActions{
		MessageID: actions.MessageID,
		Mappings:  append([]EmojiRoleMapping(nil), actions.Mappings...),
	}
	return s.save()
}
