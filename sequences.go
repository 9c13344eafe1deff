package irc

import (
	"github.com/sienna/irc/protocol"
)

// Rule sets are compiled once at definition time and shared read-only by
// every sequence of the same kind.

var nickRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddEndReply(ReplyRule{Match: map[string]int{"nickname": 0}, From: "old_nickname"},
		protocol.CmdNick)
	s.AddErrorReply(ReplyRule{Match: map[string]int{"nickname": 1}},
		protocol.ErrNicknameinuse, protocol.ErrNickcollision,
		protocol.ErrErroneusnickname)
	return s
}()

var registrationRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddEndReply(ReplyRule{}, protocol.RplWelcome)
	s.AddErrorReply(ReplyRule{},
		protocol.ErrNicknameinuse, protocol.ErrNickcollision,
		protocol.ErrErroneusnickname, protocol.ErrRestricted,
		protocol.ErrAlreadyregistred)
	return s
}()

var joinRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddReply(ReplyRule{Match: map[string]int{"channel": 0}, From: "nickname"},
		protocol.CmdJoin)
	s.AddReply(ReplyRule{Match: map[string]int{"channel": 1}}, protocol.RplTopic)
	s.AddReply(ReplyRule{Match: map[string]int{"channel": 2}}, protocol.RplNamreply)
	s.AddEndReply(ReplyRule{Match: map[string]int{"channel": 1}}, protocol.RplEndofnames)
	s.AddErrorReply(ReplyRule{Match: map[string]int{"channel": 1}},
		protocol.ErrBannedfromchan, protocol.ErrBadchannelkey,
		protocol.ErrBadchanmask, protocol.ErrToomanychannels,
		protocol.ErrToomanytargets, protocol.ErrInviteonlychan,
		protocol.ErrNosuchchannel)
	return s
}()

var partRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddEndReply(ReplyRule{Match: map[string]int{"channel": 0}, From: "nickname"},
		protocol.CmdPart)
	s.AddErrorReply(ReplyRule{Match: map[string]int{"channel": 1}},
		protocol.ErrNosuchchannel, protocol.ErrNotonchannel)
	return s
}()

var quitRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddEndReply(ReplyRule{}, protocol.CmdError)
	return s
}()

var namesRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddReply(ReplyRule{Match: map[string]int{"channel": 2}}, protocol.RplNamreply)
	s.AddEndReply(ReplyRule{Match: map[string]int{"channel": 1}}, protocol.RplEndofnames)
	return s
}()

var whoRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddReply(ReplyRule{Match: map[string]int{"channel": 1}}, protocol.RplWhoreply)
	s.AddEndReply(ReplyRule{Match: map[string]int{"channel": 1}}, protocol.RplEndofwho)
	return s
}()

var whoisRules = func() *RuleSet {
	s := NewRuleSet()
	s.AddReply(ReplyRule{Match: map[string]int{"nickname": 1}},
		protocol.RplWhoisuser, protocol.RplWhoisserver,
		protocol.RplWhoisoperator, protocol.RplWhoisidle,
		protocol.RplWhoischanop, protocol.RplWhoischannels)
	s.AddEndReply(ReplyRule{Match: map[string]int{"nickname": 1}},
		protocol.RplEndofwhois)
	return s
}()

// NewNickSequence tracks a nickname change: it ends on the server echoing
// the NICK from the old identity and fails on the nickname error replies.
func NewNickSequence(nickname, oldNickname string) *Sequence {
	return NewSequence(nickRules, map[string]string{
		"nickname":     nickname,
		"old_nickname": oldNickname,
	})
}

// NewRegistrationSequence tracks the NICK+USER handshake: it ends on
// RPL_WELCOME and fails on any registration error reply.
func NewRegistrationSequence() *Sequence {
	return NewSequence(registrationRules, nil)
}

// NewJoinSequence tracks a channel join: it accumulates the join echo,
// topic and name-list replies, ends on RPL_ENDOFNAMES and fails on the
// channel-join error replies.
func NewJoinSequence(channel, nickname string) *Sequence {
	return NewSequence(joinRules, map[string]string{
		"channel":  channel,
		"nickname": nickname,
	})
}

// NewPartSequence tracks a channel part, ending on the PART echo from our
// own identity.
func NewPartSequence(channel, nickname string) *Sequence {
	return NewSequence(partRules, map[string]string{
		"channel":  channel,
		"nickname": nickname,
	})
}

// NewQuitSequence tracks a quit, ending on the server's ERROR close
// message.
func NewQuitSequence() *Sequence {
	return NewSequence(quitRules, nil)
}

// NewNamesSequence tracks a NAMES query for one channel.
func NewNamesSequence(channel string) *Sequence {
	return NewSequence(namesRules, map[string]string{"channel": channel})
}

// NewWhoSequence tracks a WHO query for one channel.
func NewWhoSequence(channel string) *Sequence {
	return NewSequence(whoRules, map[string]string{"channel": channel})
}

// NewWhoisSequence tracks a WHOIS query, accumulating the whois reply kinds
// until RPL_ENDOFWHOIS.
func NewWhoisSequence(nickname string) *Sequence {
	return NewSequence(whoisRules, map[string]string{"nickname": nickname})
}
