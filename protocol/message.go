package protocol

import (
	"fmt"
	"strings"
)

// ParseError reports a wire line that does not match the message grammar.
// Unknown command tokens surface as a ParseError too, so callers only have
// one failure mode to handle at the line boundary.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("irc: unable to parse %q: %s", e.Line, e.Reason)
}

// Prefix is the optional sender identity of a message: either a bare server
// name, or a nickname with optional user and host parts.
type Prefix struct {
	Servername string
	Nickname   string
	User       string
	Host       string
}

// FromServer reports whether the prefix names a server rather than a user.
func (p *Prefix) FromServer() bool {
	return p.Nickname == "" && p.Servername != ""
}

// String renders the prefix without the leading ':' marker:
// nickname["!"user]"@"host, or the bare servername.
func (p *Prefix) String() string {
	if p.Nickname == "" {
		return p.Servername
	}

	var b strings.Builder
	b.WriteString(p.Nickname)
	if p.Host != "" {
		if p.User != "" {
			b.WriteByte('!')
			b.WriteString(p.User)
		}
		b.WriteByte('@')
		b.WriteString(p.Host)
	}
	return b.String()
}

// Message is one protocol message: an optional sender prefix, a symbolic
// command, and an ordered parameter list. The last parameter may contain
// spaces; it is marked with a leading ':' on the wire.
type Message struct {
	Prefix  *Prefix
	Command Command
	Params  []string
}

// NewMessage builds an unprefixed message, the shape of every message a
// client originates.
func NewMessage(command Command, params ...string) *Message {
	return &Message{Command: command, Params: params}
}

// Nick returns the sender nickname, or "" for server-prefixed and
// unprefixed messages.
func (m *Message) Nick() string {
	if m.Prefix == nil {
		return ""
	}
	return m.Prefix.Nickname
}

// Trailing returns the last parameter, or "" if there are none.
func (m *Message) Trailing() string {
	if len(m.Params) == 0 {
		return ""
	}
	return m.Params[len(m.Params)-1]
}

// String serializes the message to its wire form, without line terminator.
// The last parameter always carries the ':' marker when any parameters are
// present. A command missing from the registry falls back to its symbolic
// name, so serialization never fails.
func (m *Message) String() string {
	var b strings.Builder

	if m.Prefix != nil {
		if prefix := m.Prefix.String(); prefix != "" {
			b.WriteByte(':')
			b.WriteString(prefix)
			b.WriteByte(' ')
		}
	}

	wire, err := m.Command.Wire()
	if err != nil {
		wire = string(m.Command)
	}
	b.WriteString(wire)

	for i, param := range m.Params {
		b.WriteByte(' ')
		if i == len(m.Params)-1 {
			b.WriteByte(':')
		}
		b.WriteString(param)
	}

	return b.String()
}

// ParseMessage parses one wire line (without terminator) into a Message.
// Grammar: [":" prefix " "] command *(" " param) [" :" trailing].
func ParseMessage(line string) (*Message, error) {
	rest := line
	msg := &Message{}

	if strings.HasPrefix(rest, ":") {
		token, remainder, found := strings.Cut(rest[1:], " ")
		if !found || token == "" {
			return nil, &ParseError{Line: line, Reason: "prefix without command"}
		}
		msg.Prefix = parsePrefix(token)
		rest = remainder
	}

	// Split off the trailing parameter first so it keeps its spaces.
	var trailing string
	hasTrailing := false
	if strings.HasPrefix(rest, ":") {
		trailing = rest[1:]
		hasTrailing = true
		rest = ""
	} else if head, tail, found := strings.Cut(rest, " :"); found {
		trailing = tail
		hasTrailing = true
		rest = head
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, &ParseError{Line: line, Reason: "missing command"}
	}

	token := fields[0]
	if !validCommandToken(token) {
		return nil, &ParseError{Line: line, Reason: "malformed command token"}
	}

	command, err := CommandFromWire(token)
	if err != nil {
		return nil, &ParseError{Line: line, Reason: "unrecognized command"}
	}
	msg.Command = command

	msg.Params = fields[1:]
	if hasTrailing {
		msg.Params = append(msg.Params, trailing)
	}

	return msg, nil
}

// validCommandToken accepts letters-only tokens and exactly three digits.
func validCommandToken(token string) bool {
	if token == "" {
		return false
	}

	digits := 0
	for _, r := range token {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		default:
			return false
		}
	}

	if digits == 0 {
		return true
	}
	return digits == len(token) && digits == 3
}

// parsePrefix splits a prefix token. A '@' marks the nickname form
// (nickname["!"user]"@"host); anything else is a server name.
func parsePrefix(token string) *Prefix {
	at := strings.LastIndexByte(token, '@')
	if at < 0 {
		return &Prefix{Servername: token}
	}

	prefix := &Prefix{Host: token[at+1:]}
	if nick, user, found := strings.Cut(token[:at], "!"); found {
		prefix.Nickname = nick
		prefix.User = user
	} else {
		prefix.Nickname = token[:at]
	}
	return prefix
}
