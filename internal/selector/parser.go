package selector

import (
	"errors"
	"fmt"
	"strings"

	"selector-bot/internal/store"
)

// ErrEmptyBody means the command carried no mappings at all. Callers reply
// with the usage text.
var ErrEmptyBody = errors.New("selector body is empty")

// MalformedItemError is a user-facing rejection of one "emoji | role" item.
type MalformedItemError struct {
	Item string
}

func (e *MalformedItemError) Error() string {
	if strings.TrimSpace(e.Item) == "" {
		return "malformed selector item: expected `emoji | role`"
	}
	return fmt.Sprintf("malformed selector item %q: expected `emoji | role`", e.Item)
}

// UnknownRoleError means a role name had no exact match in the guild's
// cached role list.
type UnknownRoleError struct {
	Name string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Name)
}

// DuplicateEmojiError rejects an emoji that appears twice in one selector.
type DuplicateEmojiError struct {
	Emoji string
}

func (e *DuplicateEmojiError) Error() string {
	return fmt.Sprintf("emoji %s is used more than once", e.Emoji)
}

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenLParen
	tokenRParen
	tokenPipe
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(body string) []token {
	var tokens []token
	var text strings.Builder

	flush := func() {
		if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
			tokens = append(tokens, token{kind: tokenText, text: trimmed})
		}
		text.Reset()
	}

	for _, r := range body {
		switch r {
		case '(':
			flush()
			tokens = append(tokens, token{kind: tokenLParen, text: "("})
		case ')':
			flush()
			tokens = append(tokens, token{kind: tokenRParen, text: ")"})
		case '|':
			flush()
			tokens = append(tokens, token{kind: tokenPipe, text: "|"})
		default:
			text.WriteRune(r)
		}
	}
	flush()

	return tokens
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() (token, bool) {
	if p.done() {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) expect(kind tokenKind) (token, bool) {
	tok, ok := p.peek()
	if !ok || tok.kind != kind {
		return token{}, false
	}
	p.pos++
	return tok, true
}

// pair reads one `emoji | role` sequence.
func (p *parser) pair() (string, string, bool) {
	emoji, ok := p.expect(tokenText)
	if !ok {
		return "", "", false
	}
	if _, ok := p.expect(tokenPipe); !ok {
		return "", "", false
	}
	role, ok := p.expect(tokenText)
	if !ok {
		return "", "", false
	}
	return emoji.text, role.text, true
}

// itemText reconstructs the raw tokens of the item being parsed, for error
// messages. from is the token position at the item's start.
func (p *parser) itemText(from int) string {
	parts := make([]string, 0, p.pos-from)
	end := p.pos
	if end <= from && from < len(p.tokens) {
		end = from + 1
	}
	for _, tok := range p.tokens[from:end] {
		parts = append(parts, tok.text)
	}
	return strings.Join(parts, " ")
}

// Parse turns a selector command body into an ordered list of emoji-to-role
// mappings plus one description line per mapping. The body is either a single
// bare `emoji | role` pair or a sequence of parenthesized `(emoji | role)`
// groups. Role names resolve by exact, case-sensitive match against the
// guild's cached role list; the first failure aborts the whole selector.
func Parse(body string, roles []store.Role) ([]store.EmojiRoleMapping, []string, error) {
	p := &parser{tokens: tokenize(body)}
	if p.done() {
		return nil, nil, ErrEmptyBody
	}

	type rawPair struct {
		emoji string
		role  string
	}
	var pairs []rawPair

	if first, _ := p.peek(); first.kind == tokenLParen {
		for !p.done() {
			start := p.pos
			if _, ok := p.expect(tokenLParen); !ok {
				return nil, nil, &MalformedItemError{Item: p.itemText(start)}
			}
			emoji, role, ok := p.pair()
			if !ok {
				return nil, nil, &MalformedItemError{Item: p.itemText(start)}
			}
			if _, ok := p.expect(tokenRParen); !ok {
				return nil, nil, &MalformedItemError{Item: p.itemText(start)}
			}
			pairs = append(pairs, rawPair{emoji: emoji, role: role})
		}
	} else {
		emoji, role, ok := p.pair()
		if !ok || !p.done() {
			return nil, nil, &MalformedItemError{Item: p.itemText(0)}
		}
		pairs = append(pairs, rawPair{emoji: emoji, role: role})
	}

	byName := make(map[string]store.Role, len(roles))
	for _, role := range roles {
		if _, ok := byName[role.Name]; !ok {
			byName[role.Name] = role
		}
	}

	mappings := make([]store.EmojiRoleMapping, 0, len(pairs))
	lines := make([]string, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))

	for _, pair := range pairs {
		role, ok := byName[pair.role]
		if !ok {
			return nil, nil, &UnknownRoleError{Name: pair.role}
		}
		if _, dup := seen[pair.emoji]; dup {
			return nil, nil, &DuplicateEmojiError{Emoji: pair.emoji}
		}
		seen[pair.emoji] = struct{}{}

		mappings = append(mappings, store.EmojiRoleMapping{
			Emoji:  pair.emoji,
			RoleID: role.ID,
		})
		lines = append(lines, fmt.Sprintf("You can get <@&%s> if you react with %s", role.ID, pair.emoji))
	}

	return mappings, lines, nil
}
