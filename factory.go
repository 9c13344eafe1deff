package irc

import (
	"errors"
	"fmt"

	"github.com/sienna/irc/protocol"
)

// ErrUnsupportedCommand reports a Create call for a command the factory has
// no builder for. This is a programmer error at the call site.
var ErrUnsupportedCommand = errors.New("irc: unsupported command")

// CommandFactory builds the outgoing message(s) for a command together with
// the sequence that tracks its completion. Builders read the live identity
// at call time, so the sequence binds the nickname that was current when
// the command was issued.
type CommandFactory struct {
	identity func() Identity
}

func NewCommandFactory(identity func() Identity) *CommandFactory {
	return &CommandFactory{identity: identity}
}

// Create builds the wire messages and tracking sequence for one of the
// supported commands: nick, join, part, quit, names, who, whois, register.
func (f *CommandFactory) Create(command string, args ...string) ([]*protocol.Message, *Sequence, error) {
	switch command {
	case "nick":
		if err := expectArgs(command, args, 1); err != nil {
			return nil, nil, err
		}
		return f.nick(args[0])
	case "register":
		if err := expectArgs(command, args, 0); err != nil {
			return nil, nil, err
		}
		return f.register()
	case "join":
		if err := expectArgs(command, args, 1); err != nil {
			return nil, nil, err
		}
		return f.join(args[0])
	case "part":
		if err := expectArgs(command, args, 1); err != nil {
			return nil, nil, err
		}
		return f.part(args[0])
	case "quit":
		if len(args) > 1 {
			return nil, nil, fmt.Errorf("irc: quit takes at most 1 argument, got %d", len(args))
		}
		return f.quit(args)
	case "names":
		if err := expectArgs(command, args, 1); err != nil {
			return nil, nil, err
		}
		return f.names(args[0])
	case "who":
		if err := expectArgs(command, args, 1); err != nil {
			return nil, nil, err
		}
		return f.who(args[0])
	case "whois":
		if err := expectArgs(command, args, 1); err != nil {
			return nil, nil, err
		}
		return f.whois(args[0])
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedCommand, command)
	}
}

func expectArgs(command string, args []string, want int) error {
	if len(args) != want {
		return fmt.Errorf("irc: %s takes %d argument(s), got %d", command, want, len(args))
	}
	return nil
}

func (f *CommandFactory) nick(nickname string) ([]*protocol.Message, *Sequence, error) {
	message := protocol.NewMessage(protocol.CmdNick, nickname)
	sequence := NewNickSequence(nickname, f.identity().Nickname)
	return []*protocol.Message{message}, sequence, nil
}

func (f *CommandFactory) register() ([]*protocol.Message, *Sequence, error) {
	identity := f.identity()
	messages := []*protocol.Message{
		protocol.NewMessage(protocol.CmdNick, identity.Nickname),
		protocol.NewMessage(protocol.CmdUser, identity.User, "0", "*", identity.Realname),
	}
	return messages, NewRegistrationSequence(), nil
}

func (f *CommandFactory) join(channel string) ([]*protocol.Message, *Sequence, error) {
	message := protocol.NewMessage(protocol.CmdJoin, channel)
	sequence := NewJoinSequence(channel, f.identity().Nickname)
	return []*protocol.Message{message}, sequence, nil
}

func (f *CommandFactory) part(channel string) ([]*protocol.Message, *Sequence, error) {
	message := protocol.NewMessage(protocol.CmdPart, channel)
	sequence := NewPartSequence(channel, f.identity().Nickname)
	return []*protocol.Message{message}, sequence, nil
}

func (f *CommandFactory) quit(args []string) ([]*protocol.Message, *Sequence, error) {
	message := protocol.NewMessage(protocol.CmdQuit, args...)
	return []*protocol.Message{message}, NewQuitSequence(), nil
}

func (f *CommandFactory) names(channel string) ([]*protocol.Message, *Sequence, error) {
	message := protocol.NewMessage(protocol.CmdNames, channel)
	return []*protocol.Message{message}, NewNamesSequence(channel), nil
}

func (f *CommandFactory) who(channel string) ([]*protocol.Message, *Sequence, error) {
	message := protocol.NewMessage(protocol.CmdWho, channel)
	return []*protocol.Message{message}, NewWhoSequence(channel), nil
}

func (f *CommandFactory) whois(nickname string) ([]*protocol.Message, *Sequence, error) {
	message := protocol.NewMessage(protocol.CmdWhois, nickname)
	return []*protocol.Message{message}, NewWhoisSequence(nickname), nil
}
